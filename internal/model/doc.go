/*
Package model holds the resolved project model consumed by the graph
compiler: targets (a build configuration with its tool bindings and
properties), components (units of source with declared dependencies), and
the registry through which the rest of the system queries them.

Instances are immutable snapshots once manifest loading and dependency
resolution have run; nothing downstream mutates them. The only per-build
value type is Product, created by the orchestrator and handed to the
command layer.
*/
package model
