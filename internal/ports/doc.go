// Package ports defines the interfaces between layers. Repository and
// provider ports are implemented by adapters and injected into operation
// builders as explicit parameters; nothing is discovered by lookup at
// invocation time, which keeps the wiring graph statically inspectable.
package ports
