// Package viz provides an interactive terminal viewer that steps through
// the time axis of a variable.
//
// # Key Bindings
//
//	←/h, →/l - Previous / next time step
//	g, G     - First / last time step
//	Space    - Play / pause
//	Q        - Quit
package viz
