// Package lua runs completion providers written in Lua.
//
// A script defines a global table named "provider":
//
//	provider = {
//	    triggers = { "@" },
//
//	    -- optional; defaults to membership in triggers
//	    should_trigger = function(ch, offset) return true end,
//
//	    -- prefix includes the trigger character; line is the text
//	    -- between the start of the line and offset.
//	    complete = function(prefix, offset, line)
//	        return {
//	            "plain",
//	            { text = "clk", description = "system clock", kind = "signal" },
//	        }
//	    end,
//	}
//
// Scripts run in a restricted state with only the base, table, string
// and math libraries. Every call into Lua is bounded by a timeout.
package lua
