// Package audio decodes synthesized speech and plays it through the sound
// card using the oto/v3 library. Decoded audio lives in a ClipStore under a
// transient reference for exactly as long as one playback needs it.
package audio
