package idgen

import (
	crand "crypto/rand"
	"math/rand"
)

// DeviceCodeLength is the length of every issued device code.
const DeviceCodeLength = 8

const deviceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DeviceSet is the view of the paste store that device code generation
// needs: the set of codes currently owning live pastes. *store.Store
// satisfies it.
type DeviceSet interface {
	KnownDevices() map[string]struct{}
}

// NewDeviceCode returns a fresh 8-character device code from the alphabet
// {A-Z, 0-9} that is not currently present in devices. It samples until an
// unused code turns up; with ~2.8e12 possible codes and at most a few
// thousand live devices, a second iteration is already vanishingly rare, so
// the loop carries no iteration cap.
func NewDeviceCode(devices DeviceSet) string {
	existing := devices.KnownDevices()
	for {
		code := randomDeviceCode()
		if _, taken := existing[code]; !taken {
			return code
		}
	}
}

// randomDeviceCode draws DeviceCodeLength uniform characters from
// deviceAlphabet. Rejection sampling keeps the draw unbiased: byte values
// >= 252 (the largest multiple of 36 below 256) are discarded. On an
// entropy failure it degrades to math/rand, same as identifier generation.
func randomDeviceCode() string {
	code := make([]byte, 0, DeviceCodeLength)
	buf := make([]byte, DeviceCodeLength)
	for len(code) < DeviceCodeLength {
		if _, err := crand.Read(buf); err != nil {
			for len(code) < DeviceCodeLength {
				code = append(code, deviceAlphabet[rand.Intn(len(deviceAlphabet))])
			}
			break
		}
		for _, b := range buf {
			if len(code) == DeviceCodeLength {
				break
			}
			if b >= 252 {
				continue
			}
			code = append(code, deviceAlphabet[int(b)%len(deviceAlphabet)])
		}
	}
	return string(code)
}
