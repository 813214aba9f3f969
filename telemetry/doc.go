// Package telemetry is the semantic model of simulator telemetry.
//
// Package raw maps bytes to fields; this package decides whether those fields make sense.
// The FromRaw conversions are the only validation gate: a Header, DiskSubHeader or VarHeader
// obtained from them has non-negative sizes and offsets, a known element type and properly
// terminated strings, and nothing downstream re-checks them.
//
// # Reading values
//
// A VarSet is the catalog of variables published by one file or live session. A Sample is one
// tick of data. Sample.Read extracts a typed Value for a variable:
//
//	speed, _ := vars.Var("Speed")
//	value, err := sample.Read(speed)
//	if err != nil {
//	    return err
//	}
//	if f, ok := value.(telemetry.Float); ok {
//	    fmt.Printf("%.1f m/s\n", float32(f))
//	}
//
// Bitfield and enumeration decoding is driven by the variable's unit string. Known units such
// as "irsdk_Flags" or "irsdk_TrkLoc" decode into dedicated types (Flags, TrackLocation); an
// unknown unit never fails and yields UnknownBitfield or the plain numeric value instead.
package telemetry
