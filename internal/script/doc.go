// Package script runs Lua automation against an editing engine.
//
// Scripts execute in a restricted gopher-lua state: only the base, table,
// string and math libraries are loaded, functions that load code from disk
// or strings are removed, and every run is bounded by a timeout. The engine
// is exposed as the global module "ed":
//
//	ed.goto_line(1)
//	ed.insert("-- generated\n")
//	ed.commit()
//	for _, m in ipairs(ed.find("TODO")) do
//	  print(m.row, m.col)
//	end
//	ed.save()
//
// Rows and columns seen by scripts are 1-indexed.
package script
