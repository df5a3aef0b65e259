package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode splits a stereo float32 LE buffer into channels.
func decode(buf []byte) (left, right []float64) {
	for i := 0; i+8 <= len(buf); i += 8 {
		left = append(left, float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i:]))))
		right = append(right, float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i+4:]))))
	}
	return left, right
}

func energy(s []float64) float64 {
	e := 0.0
	for _, v := range s {
		e += v * v
	}
	return e
}

func assertInRange(t *testing.T, samples []float64) {
	t.Helper()
	for i, v := range samples {
		if v < -1 || v > 1 || math.IsNaN(v) {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestBurstStaysInRange(t *testing.T) {
	for _, mag := range []float64{-1, 0, 0.5, 1, 4} {
		for _, pan := range []float64{-1, 0, 1} {
			buf := genBurst(mag, pan, 42)
			require.NotEmpty(t, buf)
			require.Zero(t, len(buf)%8)
			l, r := decode(buf)
			assertInRange(t, l)
			assertInRange(t, r)
		}
	}
}

func TestBiggerBurstsLastLonger(t *testing.T) {
	assert.Greater(t, len(genBurst(1, 0, 1)), len(genBurst(0, 0, 1)))
}

func TestLaunchStaysInRange(t *testing.T) {
	l, r := decode(genLaunch(0.3, 7))
	require.NotEmpty(t, l)
	assertInRange(t, l)
	assertInRange(t, r)
	assert.Greater(t, energy(l), 0.0)
}

func TestPanning(t *testing.T) {
	l, r := decode(genBurst(0.5, -1, 9))
	assert.Greater(t, energy(l), 100*energy(r), "hard left")

	l, r = decode(genBurst(0.5, 1, 9))
	assert.Greater(t, energy(r), 100*energy(l), "hard right")

	l, r = decode(genBurst(0.5, 0, 9))
	assert.InDelta(t, energy(l), energy(r), 1e-6*energy(l))
}

func TestSameSeedSameSound(t *testing.T) {
	assert.Equal(t, genBurst(0.4, 0, 5), genBurst(0.4, 0, 5))
	assert.NotEqual(t, genBurst(0.4, 0, 5), genBurst(0.4, 0, 6))
}

func TestSoftSat(t *testing.T) {
	for _, x := range []float64{-100, -2, -1, -0.5, 0, 0.5, 1, 2, 100} {
		y := softSat(x)
		assert.LessOrEqual(t, math.Abs(y), 1.0)
	}
	assert.Zero(t, softSat(0))
}

func TestSoundReader(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	got, err := io.ReadAll(&soundReader{data: data})
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestNilPlayerIsSilent(t *testing.T) {
	var p *Player
	assert.NotPanics(t, func() {
		p.PlayBurst(1, 0)
		p.PlayLaunch(0)
	})
}
