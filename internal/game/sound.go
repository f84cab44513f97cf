package game

// Tone identifies a sound cue.
type Tone int

const (
	ToneStart Tone = iota
	ToneShard
	TonePortal
	ToneDamage
)

// Sound is the audio collaborator. Play must not block.
type Sound interface {
	Play(tone Tone)
}

// NopSound discards every cue.
type NopSound struct{}

// Play does nothing.
func (NopSound) Play(Tone) {}
