// Package viz renders grids in the terminal.
//
//   - [RenderLayout]: per-variable shell shapes as a styled table
//   - [RenderProfile]: one (shell, row) line as an ASCII graph
//   - [RenderRadial]: a value along the shell axis
//   - [Browser]: interactive bubbletea viewer stepping through shells and rows
package viz
