// Package sha256 forwards to github.com/minio/sha256-simd, which uses the SHA
// extensions or AVX2 where the CPU has them and falls back to the standard
// library otherwise. Event ids, HKDF and HMAC all hash through here.
package sha256
