package vectors

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"github.com/tigerwill90/ndnkdf/kdf"
)

// Vector is a published PBKDF2 known answer.
type Vector struct {
	Name       string
	PRF        string
	Password   string
	Salt       string
	Iterations int
	Length     int
	Hex        string
}

func (v Vector) Expected() []byte {
	b, err := hex.DecodeString(v.Hex)
	if err != nil {
		panic(fmt.Sprintf("vector %s: %v", v.Name, err))
	}
	return b
}

const (
	longPassword = "passwordPASSWORDpassword"
	longSalt     = "saltSALTsaltSALTsaltSALTsaltSALTsalt"
)

// All returns the PBKDF2-HMAC-SHA512 vectors followed by the RFC 7914
// (SHA256) and RFC 6070 (SHA1) ones.
func All() []Vector {
	return []Vector{
		{"sha512-c1", "sha512", "password", "salt", 1, 64, "867f70cf1ade02cff3752599a3a53dc4af34c7a669815ae5d513554e1c8cf252c02d470a285a0501bad999bfe943c08f050235d7d68b1da55e63f73b60a57fce"},
		{"sha512-c2", "sha512", "password", "salt", 2, 64, "e1d9c16aa681708a45f5c7c4e215ceb66e011a2e9f0040713f18aefdb866d53cf76cab2868a39b9f7840edce4fef5a82be67335c77a6068e04112754f27ccf4e"},
		{"sha512-c4096", "sha512", "password", "salt", 4096, 64, "d197b1b33db0143e018b12f3d1d1479e6cdebdcc97c5c0f87f6902e072f457b5143f30602641b3d55cd335988cb36b84376060ecd532e039b742a239434af2d5"},
		{"sha512-long", "sha512", longPassword, longSalt, 4096, 64, "8c0511f4c6e597c6ac6315d8f0362e225f3c501495ba23b868c005174dc4ee71115b59f9e60cd9532fa33e0f75aefe30225c583a186cd82bd4daea9724a3d3b8"},
		{"sha512-two-blocks", "sha512", "password", "salt", 1, 100, "867f70cf1ade02cff3752599a3a53dc4af34c7a669815ae5d513554e1c8cf252c02d470a285a0501bad999bfe943c08f050235d7d68b1da55e63f73b60a57fce7b532e206c2967d4c7d2ffa460539fc4d4e5eec70125d74c6c7cf86d25284f297907fcea"},
		{"sha512-empty", "sha512", "", "", 1, 64, "6d2ecbbbfb2e6dcd7056faf9af6aa06eae594391db983279a6bf27e0eb2286143ab0c996f33ca4b667e945829ea693340f2831797324e5f31df18ed171d18c97"},
		{"sha256-rfc7914-c1", "sha256", "passwd", "salt", 1, 64, "55ac046e56e3089fec1691c22544b605f94185216dde0465e68b9d57c20dacbc49ca9cccf179b645991664b39d77ef317c71b845b1e30bd509112041d3a19783"},
		{"sha256-rfc7914-c80000", "sha256", "Password", "NaCl", 80000, 64, "4ddcd8f60b98be21830cee5ef22701f9641a4418d04c0414aeff08876b34ab56a1d425a1225833549adb841b51c9b3176a272bdebba1d078478f62b397f33c8d"},
		{"sha1-rfc6070-c1", "sha1", "password", "salt", 1, 20, "0c60c80f961f0e71f3a9b524af6012062fe037a6"},
		{"sha1-rfc6070-c2", "sha1", "password", "salt", 2, 20, "ea6c014dc72d6f8ccd1ed92ace1d41f0d8de8957"},
		{"sha1-rfc6070-c4096", "sha1", "password", "salt", 4096, 20, "4b007901b765489abead49d926f721d065a429c1"},
		{"sha1-rfc6070-long", "sha1", longPassword, longSalt, 4096, 25, "3d2eec4fe41c849b80c8d83662c0e44a8b291a964cf2f07038"},
		{"sha1-rfc6070-nul", "sha1", "pass\x00word", "sa\x00lt", 4096, 16, "56fa6aa75548099dcc37d7f03425e0c3"},
	}
}

type Result struct {
	Vector Vector
	Err    error
}

func (r Result) Ok() bool {
	return r.Err == nil
}

// Check derives every vector and reports one result per vector.
func Check(vs []Vector) []Result {
	results := make([]Result, 0, len(vs))
	for _, v := range vs {
		results = append(results, Result{Vector: v, Err: check(v)})
	}
	return results
}

func check(v Vector) error {
	prf, err := kdf.LookupPRF(v.PRF)
	if err != nil {
		return err
	}

	got, err := kdf.New(kdf.WithPRF(prf)).Derive([]byte(v.Password), []byte(v.Salt), v.Iterations, v.Length)
	if err != nil {
		return err
	}

	if !bytes.Equal(got, v.Expected()) {
		return fmt.Errorf("vector %s: got %x, want %s", v.Name, got, v.Hex)
	}
	return nil
}
