// Command hanzidx is the CLI front end for the index engine: inserting
// and querying documents, inspecting shard layout, and driving the
// chatbot adapter from a REPL.
package main

func main() {
	Execute()
}
