// Package api provides the Lua API exposed to the config script.
//
// The script reaches the editor through one global table, Editor:
//
//	Editor.bind("g g", "normal", "goto-start")
//	Editor.register_command("dup", "Duplicate selections", function()
//	    local v = Editor.get_active_view()
//	    for _, s in ipairs(v:get_selections()) do
//	        s:set_text(s:get_text() .. s:get_text())
//	    end
//	end)
//
// Views, buffers and selections cross the boundary as userdata. View and
// buffer values are references: reading a field reads the live object.
// Selection values are snapshots: changing a field changes only the copy
// until it is written back with View:set_selections or
// View:add_selection. Selection:get_text and Selection:set_text are the
// exceptions and act on the live buffer.
//
// Script commands run as one undo unit on the active buffer. Errors
// raised inside them surface as dispatch errors wrapping
// lua.ErrScriptError.
package api
