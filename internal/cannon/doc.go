// Package cannon models a pneumatic potato cannon: a pressurized tank
// discharging through a barrel of fixed bore, driving a projectile against
// ambient pressure.
//
// The model reduces the six physical free variables (projectile mass, bore
// diameter, barrel length, tank volume, tank pressure, ambient pressure) to
// three ODE coefficients via Boyle's law, and integrates
//
//	x'' = a/(b + x) - c
//
// from rest over a short time window. [Cannon] implements [dynamo.System] so
// any integrator in this module can drive it; [Simulate] is the single entry
// point that validates parameters, solves the ODE, optionally truncates the
// trajectory at barrel exit, and derives kinetic-energy and entropy-change
// series.
//
// All inputs are SI base units. Unit conversion from engineering units
// (grams, millimeters, liters, atmospheres) lives in the config package.
package cannon
