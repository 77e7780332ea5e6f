// Package variable defines the typed, mode-scoped variable model and the
// narrow capability interface the importer uses to reach a variable store.
//
// This package contains type definitions only. All other internal packages
// import variable; variable imports nothing internal.
//
// Key design constraints:
//   - Local and library (remote) entities are distinct types. Store methods
//     say which one they accept, so a library variable can never be mutated
//     by accident.
//   - Value is a sealed interface: only Color, Float, Bool, String and Alias
//     implement it.
//   - A variable holds one value per mode of its owning collection.
package variable
