// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: The sortOfRemoteNG Authors

package rfb

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" // #nosec G501 - MD5 is fixed by the ARD wire format
	"encoding/binary"
	"fmt"
	"net"
	"sync"
)

// ClientAuth defines the interface for RFB authentication methods.
// The session layer reads the server's chosen security type and runs
// the matching handler exactly once per connection. Handshakes block on
// the connection; callers running under a cooperative scheduler must
// isolate them so they cannot stall unrelated work.
type ClientAuth interface {
	SecurityType() uint8
	Handshake(ctx context.Context, conn net.Conn) error
	String() string
}

// ClientAuthNone implements the "None" authentication method (security
// type 1). No bytes are exchanged; the handshake always succeeds.
type ClientAuthNone struct {
	logger Logger
}

// SecurityType returns the security type identifier for None authentication.
func (c *ClientAuthNone) SecurityType() uint8 {
	return 1
}

// Handshake performs the None authentication handshake.
func (c *ClientAuthNone) Handshake(ctx context.Context, conn net.Conn) error {
	select {
	case <-ctx.Done():
		return timeoutError("ClientAuthNone.Handshake", "authentication cancelled", ctx.Err())
	default:
	}

	if c.logger != nil {
		c.logger.Debug("None authentication handshake completed")
	}

	return nil
}

// String returns a human-readable description of the authentication method.
func (c *ClientAuthNone) String() string {
	return "None"
}

// SetLogger sets the logger for the authentication method.
func (c *ClientAuthNone) SetLogger(logger Logger) {
	c.logger = logger
}

// PasswordAuth implements VNC password authentication (security type 2).
type PasswordAuth struct {
	Password string
	logger   Logger
	secMem   *SecureMemory
}

// NewPasswordAuth creates a new PasswordAuth instance.
func NewPasswordAuth(password string) *PasswordAuth {
	return &PasswordAuth{
		Password: password,
		secMem:   &SecureMemory{},
	}
}

// SecurityType returns the security type identifier for VNC password
// authentication.
func (p *PasswordAuth) SecurityType() uint8 {
	return 2
}

// Handshake performs the VNC password authentication handshake: read
// the 16-byte server challenge, encrypt each 8-byte half independently
// with the mangled DES key, and send the 16-byte response. The server
// alone decides pass or fail; that verdict arrives in a later protocol
// message handled by the session layer.
func (p *PasswordAuth) Handshake(ctx context.Context, conn net.Conn) error {
	select {
	case <-ctx.Done():
		return timeoutError("PasswordAuth.Handshake", "authentication cancelled", ctx.Err())
	default:
	}

	if p.logger != nil {
		p.logger.Debug("Starting VNC password authentication handshake")
		if len(p.Password) > VNCMaxPasswordLength {
			p.logger.Warn("Password exceeds VNC maximum length and will be truncated",
				Field{Key: "password_length", Value: len(p.Password)})
		}
		if len(p.Password) == 0 {
			p.logger.Warn("Empty password provided for VNC authentication")
		}
	}

	challenge := make([]byte, VNCChallengeSize)
	if err := binary.Read(conn, binary.BigEndian, challenge); err != nil {
		if p.logger != nil {
			p.logger.Error("Failed to read authentication challenge",
				Field{Key: "error", Value: err})
		}
		return networkError("PasswordAuth.Handshake", "failed to read authentication challenge", err)
	}

	response, err := encryptVNCChallenge(p.Password, challenge)
	if err != nil {
		return authenticationError("PasswordAuth.Handshake", "failed to encrypt challenge", err)
	}

	if err := binary.Write(conn, binary.BigEndian, response); err != nil {
		if p.logger != nil {
			p.logger.Error("Failed to send encrypted response",
				Field{Key: "error", Value: err})
		}
		return networkError("PasswordAuth.Handshake", "failed to send encrypted response", err)
	}

	if p.logger != nil {
		p.logger.Debug("VNC password authentication handshake completed")
	}

	return nil
}

// String returns a human-readable description of the authentication method.
func (p *PasswordAuth) String() string {
	return "VNC Password"
}

// SetLogger sets the logger for the authentication method.
func (p *PasswordAuth) SetLogger(logger Logger) {
	p.logger = logger
}

// ClearPassword scrubs the password copy held by the handler.
func (p *PasswordAuth) ClearPassword() {
	if p.secMem == nil {
		p.secMem = &SecureMemory{}
	}
	p.Password = p.secMem.ClearString(p.Password)
}

// encryptVNCChallenge produces the 16-byte VNC authentication response:
// both 8-byte challenge halves encrypted independently in ECB mode with
// the bit-reversed password key. There is no chaining between halves.
func encryptVNCChallenge(password string, challenge []byte) ([]byte, error) {
	if len(challenge) != VNCChallengeSize {
		return nil, validationError("encryptVNCChallenge",
			fmt.Sprintf("challenge must be exactly %d bytes", VNCChallengeSize), nil)
	}

	key := vncDESKey(password)
	defer (&SecureMemory{}).ClearBytes(key)

	c, err := NewDESCipher(key)
	if err != nil {
		return nil, err
	}

	response := make([]byte, VNCChallengeSize)
	if err := c.EncryptBlock(response[:DESBlockSize], challenge[:DESBlockSize]); err != nil {
		return nil, err
	}
	if err := c.EncryptBlock(response[DESBlockSize:], challenge[DESBlockSize:]); err != nil {
		return nil, err
	}

	return response, nil
}

// ARDAuth implements Apple Remote Desktop authentication (security
// type 30): an anonymous Diffie-Hellman exchange followed by an
// AES-128-CBC encrypted credential block.
//
// The handler trusts the server's group parameters: it does not verify
// that the prime is actually prime or that the peer public key is in
// range. That is the protocol's trust model, accepted as-is, and one
// more reason to tunnel RFB over a secure transport.
type ARDAuth struct {
	Username string
	Password string
	logger   Logger
	rng      *SecureRandom
}

// NewARDAuth creates a new ARDAuth instance for the given credentials.
// Credentials are transient: they are consumed by a single Handshake
// call and each is truncated or zero-padded to 64 bytes on the wire.
func NewARDAuth(username, password string) *ARDAuth {
	return &ARDAuth{
		Username: username,
		Password: password,
		rng:      newSecureRandom(),
	}
}

// SecurityType returns the security type identifier for ARD authentication.
func (a *ARDAuth) SecurityType() uint8 {
	return 30
}

// String returns a human-readable description of the authentication method.
func (a *ARDAuth) String() string {
	return "Apple Remote Desktop"
}

// SetLogger sets the logger for the authentication method.
func (a *ARDAuth) SetLogger(logger Logger) {
	a.logger = logger
}

// Handshake performs the ARD authentication handshake.
//
// Server to client: [u16 BE generator][u16 BE keyLen][keyLen bytes
// prime][keyLen bytes peer public key]. Client to server: [keyLen bytes
// client public key][128 bytes AES-128-CBC ciphertext of the 64-byte
// username field followed by the 64-byte password field], encrypted
// with a zero IV and no padding under the MD5 digest of the shared
// secret padded to keyLen bytes.
func (a *ARDAuth) Handshake(ctx context.Context, conn net.Conn) error {
	select {
	case <-ctx.Done():
		return timeoutError("ARDAuth.Handshake", "authentication cancelled", ctx.Err())
	default:
	}

	if a.logger != nil {
		a.logger.Debug("Starting ARD authentication handshake")
	}

	var generator, keyLen uint16
	if err := binary.Read(conn, binary.BigEndian, &generator); err != nil {
		return networkError("ARDAuth.Handshake", "failed to read DH generator", err)
	}
	if err := binary.Read(conn, binary.BigEndian, &keyLen); err != nil {
		return networkError("ARDAuth.Handshake", "failed to read DH key length", err)
	}

	if generator == 0 {
		return protocolError("ARDAuth.Handshake", "server announced a zero DH generator", nil)
	}
	if keyLen == 0 || keyLen > ARDMaxKeyLength {
		return cryptoError("ARDAuth.Handshake",
			fmt.Sprintf("server announced absurd DH key length: %d", keyLen), nil)
	}

	prime := make([]byte, keyLen)
	if err := binary.Read(conn, binary.BigEndian, prime); err != nil {
		return networkError("ARDAuth.Handshake", "failed to read DH prime", err)
	}

	peerKey := make([]byte, keyLen)
	if err := binary.Read(conn, binary.BigEndian, peerKey); err != nil {
		return networkError("ARDAuth.Handshake", "failed to read server public key", err)
	}

	if a.logger != nil {
		a.logger.Debug("Received DH parameters",
			Field{Key: "generator", Value: generator},
			Field{Key: "key_length", Value: keyLen})
	}

	if a.rng == nil {
		a.rng = newSecureRandom()
	}
	privateKey, err := a.rng.GenerateBytes(int(keyLen))
	if err != nil {
		return cryptoError("ARDAuth.Handshake", "failed to generate DH private key", err)
	}
	defer (&SecureMemory{}).ClearBytes(privateKey)

	g := NewBigUint(uint32(generator))
	p := BigUintFromBytesBE(prime)
	peer := BigUintFromBytesBE(peerKey)
	private := BigUintFromBytesBE(privateKey)

	publicKey := g.ModPow(private, p)
	sharedSecret := peer.ModPow(private, p)

	secretBytes := sharedSecret.BytesBE(int(keyLen))
	defer (&SecureMemory{}).ClearBytes(secretBytes)
	aesKey := md5.Sum(secretBytes) // #nosec G401 - MD5 is fixed by the ARD wire format
	defer (&SecureMemory{}).ClearBytes(aesKey[:])

	credentials := make([]byte, ARDCredentialBlockSize)
	copy(credentials[:ARDCredentialFieldSize], a.Username)
	copy(credentials[ARDCredentialFieldSize:], a.Password)
	defer (&SecureMemory{}).ClearBytes(credentials)

	ciphertext, err := encryptARDCredentials(aesKey[:], credentials)
	if err != nil {
		return cryptoError("ARDAuth.Handshake", "failed to encrypt credential block", err)
	}

	if err := binary.Write(conn, binary.BigEndian, publicKey.BytesBE(int(keyLen))); err != nil {
		return networkError("ARDAuth.Handshake", "failed to send public key", err)
	}
	if err := binary.Write(conn, binary.BigEndian, ciphertext); err != nil {
		return networkError("ARDAuth.Handshake", "failed to send credential block", err)
	}

	if a.logger != nil {
		a.logger.Debug("ARD authentication handshake completed")
	}

	return nil
}

// ClearCredentials scrubs the credential copies held by the handler.
func (a *ARDAuth) ClearCredentials() {
	sm := &SecureMemory{}
	a.Username = sm.ClearString(a.Username)
	a.Password = sm.ClearString(a.Password)
}

// encryptARDCredentials encrypts the 128-byte credential block with
// AES-128-CBC under an all-zero IV. The block is already a multiple of
// the AES block size, so no padding is applied.
func encryptARDCredentials(key, credentials []byte) ([]byte, error) {
	if len(credentials) != ARDCredentialBlockSize {
		return nil, validationError("encryptARDCredentials",
			fmt.Sprintf("credential block must be exactly %d bytes", ARDCredentialBlockSize), nil)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, cryptoError("encryptARDCredentials", "failed to create AES cipher", err)
	}

	var iv [aes.BlockSize]byte
	ciphertext := make([]byte, ARDCredentialBlockSize)
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(ciphertext, credentials)

	return ciphertext, nil
}

// AuthFactory is a function type that creates new instances of
// authentication methods.
type AuthFactory func() ClientAuth

// AuthRegistry manages available authentication methods keyed by
// security type.
type AuthRegistry struct {
	factories map[uint8]AuthFactory
	mu        sync.RWMutex
	logger    Logger
}

// NewAuthRegistry creates a new authentication registry with the
// built-in authentication methods registered.
func NewAuthRegistry() *AuthRegistry {
	registry := &AuthRegistry{
		factories: make(map[uint8]AuthFactory),
		logger:    &NoOpLogger{},
	}

	registry.Register(1, func() ClientAuth {
		return &ClientAuthNone{}
	})

	registry.Register(2, func() ClientAuth {
		return &PasswordAuth{}
	})

	registry.Register(30, func() ClientAuth {
		return &ARDAuth{rng: newSecureRandom()}
	})

	return registry
}

// Register adds an authentication method factory to the registry.
func (r *AuthRegistry) Register(securityType uint8, factory AuthFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.logger != nil {
		r.logger.Debug("Registering authentication method",
			Field{Key: "security_type", Value: securityType})
	}

	r.factories[securityType] = factory
}

// Unregister removes an authentication method from the registry.
func (r *AuthRegistry) Unregister(securityType uint8) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[securityType]; exists {
		delete(r.factories, securityType)
		return true
	}

	return false
}

// CreateAuth creates a new instance of the authentication method for
// the given security type.
func (r *AuthRegistry) CreateAuth(securityType uint8) (ClientAuth, error) {
	r.mu.RLock()
	factory, exists := r.factories[securityType]
	r.mu.RUnlock()

	if !exists {
		if r.logger != nil {
			r.logger.Warn("Unsupported authentication method requested",
				Field{Key: "security_type", Value: securityType})
		}
		return nil, unsupportedError("AuthRegistry.CreateAuth",
			fmt.Sprintf("unsupported security type: %d", securityType), nil)
	}

	return factory(), nil
}

// SupportedTypes returns a list of all registered security types.
func (r *AuthRegistry) SupportedTypes() []uint8 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]uint8, 0, len(r.factories))
	for securityType := range r.factories {
		types = append(types, securityType)
	}

	return types
}

// IsSupported checks if a security type is registered.
func (r *AuthRegistry) IsSupported(securityType uint8) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[securityType]
	return exists
}

// SetLogger sets the logger for the authentication registry.
func (r *AuthRegistry) SetLogger(logger Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger = logger
}

// NegotiateAuth selects an authentication method from the server's
// advertised types, honoring the preferred order when given.
func (r *AuthRegistry) NegotiateAuth(ctx context.Context, serverTypes, preferredOrder []uint8) (ClientAuth, uint8, error) {
	select {
	case <-ctx.Done():
		return nil, 0, timeoutError("AuthRegistry.NegotiateAuth", "negotiation cancelled", ctx.Err())
	default:
	}

	if preferredOrder == nil {
		preferredOrder = serverTypes
	}

	for _, preferredType := range preferredOrder {
		for _, serverType := range serverTypes {
			if preferredType == serverType && r.IsSupported(preferredType) {
				auth, err := r.CreateAuth(preferredType)
				if err != nil {
					continue
				}

				if r.logger != nil {
					r.logger.Info("Authentication method negotiated",
						Field{Key: "security_type", Value: preferredType},
						Field{Key: "method", Value: auth.String()})
				}

				return auth, preferredType, nil
			}
		}
	}

	supportedTypes := r.SupportedTypes()
	return nil, 0, unsupportedError("AuthRegistry.NegotiateAuth",
		fmt.Sprintf("no mutual authentication method found. server: %v, client: %v",
			serverTypes, supportedTypes), nil)
}
