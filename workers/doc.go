/*
Package workers supports the "stop my background goroutines on exit" part of a script's lifecycle.

A [Group] hands every worker a context derived from one cancel root.
Shutdown is cooperative: [Group.Stop] cancels the shared context and [Group.Wait] joins the workers, trusting each one to notice the cancellation and return.
There is no forced termination and no timeout, matching shell-script expectations where a stuck child holds up the parent.

[Group.Notify] ties an interrupt signal to the same cancellation, so a SIGINT asks every worker to stop before the process exits.
*/
package workers
