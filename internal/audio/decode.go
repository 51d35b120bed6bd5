package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
)

// ErrEmptyAudio is returned when there is nothing to decode.
var ErrEmptyAudio = errors.New("audio data is empty")

const decodeChunk = 2048

// PCM is signed 16-bit little-endian interleaved audio.
type PCM struct {
	Data       []byte
	SampleRate int
	Channels   int
}

// Duration returns the playback length of the samples.
func (p PCM) Duration() time.Duration {
	frame := p.Channels * 2
	if frame == 0 || p.SampleRate == 0 {
		return 0
	}
	frames := len(p.Data) / frame
	return time.Duration(frames) * time.Second / time.Duration(p.SampleRate)
}

// DecodeMP3 decodes an MP3 payload into 16-bit PCM.
func DecodeMP3(data []byte) (PCM, error) {
	if len(data) == 0 {
		return PCM{}, ErrEmptyAudio
	}

	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return PCM{}, fmt.Errorf("unable to decode mp3: %w", err)
	}
	defer streamer.Close() //nolint:errcheck

	return encodePCM(streamer, format)
}

// encodePCM drains s and encodes every sample as signed 16-bit. Only the
// channel count is taken from format; precision is always 2 bytes.
func encodePCM(s beep.Streamer, format beep.Format) (PCM, error) {
	format.Precision = 2

	var (
		out     bytes.Buffer
		samples = make([][2]float64, decodeChunk)
		frame   = make([]byte, format.Width())
	)
	for {
		n, ok := s.Stream(samples)
		for _, sample := range samples[:n] {
			w := format.EncodeSigned(frame, sample)
			out.Write(frame[:w])
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return PCM{}, fmt.Errorf("unable to read mp3 stream: %w", err)
	}
	if out.Len() == 0 {
		return PCM{}, ErrEmptyAudio
	}

	return PCM{
		Data:       out.Bytes(),
		SampleRate: int(format.SampleRate),
		Channels:   format.NumChannels,
	}, nil
}
