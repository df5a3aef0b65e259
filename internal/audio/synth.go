package audio

import "math"

// putStereoF32LR writes independent left/right samples in [-1,1] as float32 LE at frame i.
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}

// putPanned writes a mono sample with constant-power panning; pan runs -1 (left) to 1 (right).
func putPanned(buf []byte, i int, sample, pan float64) {
	a := (clamp(pan, -1, 1) + 1) * math.Pi / 4
	putStereoF32LR(buf, i, sample*math.Cos(a), sample*math.Sin(a))
}

// softSat applies gentle saturation, keeping output within [-1,1].
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// makeBuf allocates a stereo float32 buffer for n frames.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// genBurst renders a firework detonation. magnitude in [0,1] deepens the boom
// and lengthens the crackle tail.
func genBurst(magnitude, pan float64, seed uint64) []byte {
	norm := clamp(magnitude, 0, 1)
	dur := 0.45 + 0.9*norm
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	seed |= 1
	lp1, lp2 := 0.0, 0.0
	subPhase := 0.0
	crackle := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		// Thump with a falling pitch.
		subFreq := (120 - 50*norm) * math.Pow(0.3, p)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*(9-4*norm)) * (0.45 + 0.3*norm)

		// Bandpassed noise body.
		raw := lcg(&seed)
		lp1 = lp1*0.7 + raw*0.3
		lp2 = lp2*0.97 + raw*0.03
		body := (lp1 - lp2) * math.Exp(-p*7) * 0.35

		// Sparse crackle while the sparks burn out.
		if lcg(&seed) > 0.997-0.004*norm {
			crackle = 0.5 * (1 - p)
		}
		crackle *= 0.93
		pop := crackle * lcg(&seed)

		putPanned(buf, i, softSat((sub+body+pop)*0.9), pan)
	}
	return buf
}

// genLaunch renders the rising whistle of a rocket leaving the ground.
func genLaunch(pan float64, seed uint64) []byte {
	n := int(0.6 * SampleRate)
	buf := makeBuf(n)
	seed |= 1
	lp := 0.0
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := 900 + 1500*p
		phase += 2 * math.Pi * freq / SampleRate

		raw := lcg(&seed)
		lp = lp*0.8 + raw*0.2
		env := math.Min(p*12, 1) * (1 - p)
		s := (math.Sin(phase)*0.22 + lp*0.3) * env
		putPanned(buf, i, softSat(s), pan)
	}
	return buf
}
