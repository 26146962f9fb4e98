package crypto

// Envelope layout:
//
//	magic "PPEV", mode byte (0 plaintext, 1 encrypted), then for encrypted
//	envelopes a 16-byte salt, 12-byte nonce and the authenticated
//	ciphertext; for plaintext envelopes the raw payload.

const (
	envelopeMagic = "PPEV"

	ModePlaintext byte = 0
	ModeEncrypted byte = 1
)

const headerSize = len(envelopeMagic) + 1

// Wrap frames payload for at-rest storage. The payload is encrypted iff
// password is non-empty; salt and nonce are freshly generated per call.
func Wrap(payload, password []byte) ([]byte, error) {
	if len(password) == 0 {
		out := make([]byte, 0, headerSize+len(payload))
		out = append(out, envelopeMagic...)
		out = append(out, ModePlaintext)
		return append(out, payload...), nil
	}

	kdf, err := NewKDF()
	if err != nil {
		return nil, err
	}
	nonce, err := GenerateRandom(NonceSize)
	if err != nil {
		return nil, err
	}

	key := kdf.DeriveKey(password)
	defer ClearBytes(key)
	enc := NewEncryptor(key)
	defer enc.Destroy()

	ciphertext, err := enc.Seal(nonce, payload)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSize+SaltSize+NonceSize+len(ciphertext))
	out = append(out, envelopeMagic...)
	out = append(out, ModeEncrypted)
	out = append(out, kdf.Salt...)
	out = append(out, nonce...)
	return append(out, ciphertext...), nil
}

// Unwrap reverses Wrap. A wrong password or any tampered byte fails with
// ErrAuthFailed before the payload is interpreted. A password supplied for
// a plaintext envelope is ignored.
func Unwrap(data, password []byte) ([]byte, error) {
	if len(data) < headerSize || string(data[:len(envelopeMagic)]) != envelopeMagic {
		return nil, ErrInvalidEnvelope
	}
	mode := data[len(envelopeMagic)]
	body := data[headerSize:]

	switch mode {
	case ModePlaintext:
		return body, nil
	case ModeEncrypted:
		if len(body) < SaltSize+NonceSize+TagSize {
			return nil, ErrInvalidEnvelope
		}
		if len(password) == 0 {
			return nil, ErrAuthFailed
		}
		kdf := &KDF{Salt: body[:SaltSize]}
		nonce := body[SaltSize : SaltSize+NonceSize]
		ciphertext := body[SaltSize+NonceSize:]

		key := kdf.DeriveKey(password)
		defer ClearBytes(key)
		enc := NewEncryptor(key)
		defer enc.Destroy()

		return enc.Open(nonce, ciphertext)
	default:
		return nil, ErrInvalidEnvelope
	}
}
