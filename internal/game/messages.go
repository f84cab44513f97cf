package game

import "github.com/leonelquinteros/gotext"

// Advisory lines are looked up through gotext with the English text as the
// message id, so an untranslated build shows English.

func msgDoorUnlocked() string { return gotext.Get("Door unlocked") }
func msgDoorLocked() string   { return gotext.Get("Door is locked") }
func msgKey() string          { return gotext.Get("Picked up a key") }
func msgPatch() string        { return gotext.Get("Patched up") }
func msgBlinkReady() string   { return gotext.Get("Blink ready") }
func msgBlink() string        { return gotext.Get("Blink") }
func msgPortalOpen() string   { return gotext.Get("Portal opened") }
func msgOuch() string         { return gotext.Get("Ouch") }
func msgBlocked() string      { return gotext.Get("Blocked") }
func msgNothing() string      { return gotext.Get("Nothing to interact with") }
