package script

import (
	"fmt"
	"os"
)

func ExampleStatus() {
	fmt.Println(Status(true), Status(false), Status(42), Status(300), Status("not-a-number"))
	// Output: 0 1 42 1 1
}

func ExampleStub() {
	s := New("example")
	s.MustAddSubcommand(&Stub{CommandName: "list", Short: "List stuff", Err: os.Stdout})
	// A Stub reports that it isn't implemented yet, and that's not an error.
	_, _ = s.ParseArgs([]string{"list"})

	// Output:
	// Subcommand list has no run method implemented
}
