package didkey

import "math/big"

// base58Alphabet is the Bitcoin/IPFS base58btc alphabet: no '0', 'O', 'I',
// or 'l', to avoid visual ambiguity.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var base58Index = func() [256]int8 {
	var m [256]int8
	for i := range m {
		m[i] = -1
	}
	for i, c := range []byte(base58Alphabet) {
		m[c] = int8(i)
	}
	return m
}()

// base58Encode renders b as a base58btc string, preserving leading zero
// bytes as leading '1' characters.
func base58Encode(b []byte) string {
	nPad := 0
	for ; nPad < len(b) && b[nPad] == 0; nPad++ {
	}

	num := new(big.Int).SetBytes(b)
	base := big.NewInt(58)
	mod := new(big.Int)

	var out []byte
	for num.Sign() > 0 {
		num.DivMod(num, base, mod)
		out = append(out, base58Alphabet[mod.Int64()])
	}
	for i := 0; i < nPad; i++ {
		out = append(out, base58Alphabet[0])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// base58Decode parses a base58btc string back to bytes.
func base58Decode(s string) ([]byte, error) {
	num := new(big.Int)
	base := big.NewInt(58)
	for i := 0; i < len(s); i++ {
		idx := base58Index[s[i]]
		if idx < 0 {
			return nil, ErrInvalidBase58
		}
		num.Mul(num, base)
		num.Add(num, big.NewInt(int64(idx)))
	}

	nPad := 0
	for ; nPad < len(s) && s[nPad] == base58Alphabet[0]; nPad++ {
	}

	full := num.Bytes()
	out := make([]byte, nPad+len(full))
	copy(out[nPad:], full)
	return out, nil
}
