/*
Package graph compiles the resolved project model into an incremental
build graph and drives the external executor over it.

Generation is a single synchronous pass per target: aggregate the global
compiler flags, declare the tool rules, then for every enabled component
emit its compile edges, resource copies, and one terminal archive or link
edge, finishing with a phony aggregate goal. The document goes to
<builddir>/build.ninja and the executor owns everything from there:
scheduling, parallelism, and incremental bookkeeping. This package keeps
no state between invocations.
*/
package graph
