// Package script runs Lua scripts against an engine buffer.
//
// Scripts run in a gopher-lua state with only the base, table, string and
// math libraries. File loading, io, os, debug and package are not
// available. Two modules are installed as globals:
//
//	buf.len()                    buffer length
//	buf.get(i)                   byte at offset i
//	buf.set(i, b)                overwrite the byte at offset i
//	buf.read(s, e)               bytes in [s, e) as a string
//	buf.insert(i, str)           insert, returns the affected start and end
//	buf.delete(s, e)             delete [s, e), returns start and end
//	buf.overwrite(i, str)        overwrite, returns start and end
//	buf.splice(s, e, str)        replace [s, e), returns start and end
//	buf.find(str [, from])       first offset at or after from, or nil
//	buf.rfind(str [, from])      last offset at or before from, or nil
//	buf.undo()                   revert the last edit, returns its offset or nil
//	buf.can_undo()               whether there is anything to undo
//	buf.checkpoint()             mark the undo history
//	buf.rollback(cp)             undo everything after a checkpoint
//
//	hex.decode(str)              "de ad" -> "\xde\xad"
//	hex.encode(str)              "\xde\xad" -> "dead"
//
// Offsets are zero-based byte offsets. Engine errors are raised as Lua
// errors. Every call into these modules counts towards the runner's call
// limit, and the whole run is bounded by its timeout.
package script
