// Package ui implements the scout watch dashboard with Bubble Tea.
//
// The model never talks to the client directly. A background poller in
// package app writes discovery results into a state.Store; the model reads a
// snapshot on every tick and renders it. Actions the user triggers (refresh,
// clear cache) run as tea.Cmds against the Backend interface so the UI stays
// responsive while they block.
//
// Layout, top to bottom:
//
//	scout  ● CONNECTED  port 51234  checked 15:04:05
//	r Refresh now  d Discovery sources  l Companion log  ...
//	images  https://www.lelanation.fr
//	cache   ~/.local/share/fr.lelanation.companion/image-cache
//	<last action result>
//	<viewport: discovery report or log tail>
//
// The theme is cycled with T and saved to prefs.
package ui
