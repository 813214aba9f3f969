// Package live reads telemetry from a running simulator.
//
// The simulator publishes the same layout as a recording into a named shared-memory region:
// a header, the variable descriptors, the session info and up to four rotating record slots.
// After each tick it signals a named event. A Client waits on that event, copies the header,
// picks the slot with the newest tick and copies that record out before the writer can reuse it:
//
//	client, err := live.Connect(live.WithTimeout(500 * time.Millisecond))
//	if err != nil {
//	    return err // errs.ErrDisconnected when the simulator is not running
//	}
//	defer client.Close()
//
//	rpm, _ := client.Vars().Var("RPM")
//	for {
//	    sample, err := client.Poll()
//	    switch {
//	    case errors.Is(err, errs.ErrTimeout):
//	        continue
//	    case err != nil:
//	        return err
//	    }
//	    value, _ := sample.Read(rpm)
//	    ...
//	}
//
// The shared region is reached through a Source. OpenSystem attaches to the simulator's region
// on Windows, or to the /dev/shm bridge files on Linux. MemorySource is an in-process
// implementation used by tests and replay tools.
//
// # Thread Safety
//
// A Client is not safe for concurrent use. Every call may replace the header and the variable
// catalog it returns.
package live
