// Package luarule loads a user-supplied Lua script as a custom
// formatting rule. The script defines a global function
//
//	function format(line)
//	  return line
//	end
//
// which receives one line of text (leading whitespace included,
// trailing whitespace already stripped by the formatter) and returns
// the transformed line. The rule runs after the built-in rules and must
// be idempotent; a script error leaves the line at its built-in result.
//
// Scripts run in a restricted Lua state: only the base, string and
// table libraries are opened, and the file/code-loading globals are
// removed.
package luarule
