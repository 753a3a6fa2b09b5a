package conway

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Spectrum is a histogram of small non-negative integers: Spectrum[n] is the count of items of size n.
// Spectrum is used for face sizes and vertex degrees.
type Spectrum []int64

// SpectrumLSM is a canonical binary encoding of a Spectrum made by AppendSpectrumLSM().
type SpectrumLSM []byte

// Tally increments the count for n, growing the Spectrum as needed.
func (S *Spectrum) Tally(n int) {
	if n < 0 {
		return
	}
	if n >= len(*S) {
		S.SetLen(n + 1)
	}
	(*S)[n]++
}

// SetLen grows or shrinks S to the given length, zeroing any added elements.
func (S *Spectrum) SetLen(spectrumLen int) {
	if cap(*S) < spectrumLen {
		dimLen := spectrumLen
		if dimLen < 8 {
			dimLen = 8 // prevent rapid resizing
		}
		grown := make([]int64, spectrumLen, dimLen)
		copy(grown, *S)
		*S = grown
	} else {
		prev := len(*S)
		*S = (*S)[:spectrumLen]
		for i := prev; i < spectrumLen; i++ {
			(*S)[i] = 0
		}
	}
}

// Total returns the sum of all counts.
func (S Spectrum) Total() int64 {
	total := int64(0)
	for _, Si := range S {
		total += Si
	}
	return total
}

// IsEqual returns true if both spectra have the same counts, where missing trailing elements count as 0.
func (S Spectrum) IsEqual(other Spectrum) bool {
	A, B := S, other
	if len(A) < len(B) {
		A, B = B, A
	}
	for i, Ai := range A {
		Bi := int64(0)
		if i < len(B) {
			Bi = B[i]
		}
		if Ai != Bi {
			return false
		}
	}
	return true
}

// IsZero returns true if all counts of this Spectrum are 0.
func (S Spectrum) IsZero() bool {
	for _, Si := range S {
		if Si != 0 {
			return false
		}
	}
	return true
}

// trimmed returns S without trailing zero counts.
func (S Spectrum) trimmed() Spectrum {
	N := len(S)
	for N > 0 && S[N-1] == 0 {
		N--
	}
	return S[:N]
}

// AppendSpectrumLSM appends a canonical binary encoding of S to out.
//
// Trailing zero counts are not encoded, so spectra that are IsEqual() have identical encodings.
func (S Spectrum) AppendSpectrumLSM(out []byte) SpectrumLSM {
	var scrap [binary.MaxVarintLen64]byte

	key := out
	for _, Si := range S.trimmed() {
		n := binary.PutVarint(scrap[:], Si)
		key = append(key, scrap[:n]...)
	}
	return key
}

// InitFromSpectrumLSM assigns this Spectrum from a binary encoding made from AppendSpectrumLSM()
func (S *Spectrum) InitFromSpectrumLSM(key SpectrumLSM) error {
	out := (*S)[:0]
	rdr := bytes.NewReader(key)
	for rdr.Len() > 0 {
		Si, err := binary.ReadVarint(rdr)
		if err != nil {
			*S = out
			return errors.Wrap(ErrUnmarshal, err.Error())
		}
		out = append(out, Si)
	}
	*S = out
	return nil
}

// WriteAsString writes S as "n:count" pairs of its non-zero counts, e.g. "{3:8}" for an octahedron's faces.
func (S Spectrum) WriteAsString(out io.Writer) {
	out.Write([]byte{'{'})
	first := true
	for n, Sn := range S {
		if Sn == 0 {
			continue
		}
		if !first {
			out.Write([]byte{' '})
		}
		first = false
		fmt.Fprintf(out, "%d:%d", n, Sn)
	}
	out.Write([]byte{'}'})
}

func (S Spectrum) String() string {
	var buf bytes.Buffer
	S.WriteAsString(&buf)
	return buf.String()
}
