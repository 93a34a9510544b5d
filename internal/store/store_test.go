package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	kerrors "github.com/PolarWolf314/clienv/internal/errors"
	"github.com/PolarWolf314/clienv/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_encryption_key_32_bytes_ok!"

func testKey(t *testing.T) secrets.SecretKey {
	t.Helper()
	key, err := secrets.ParseSecretKey(testSecret)
	require.NoError(t, err)
	return key
}

func openTemp(t *testing.T, opts Options) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "env_vars.json")
	st, err := Open(NewFileBackend(path), opts)
	require.NoError(t, err)
	return st, path
}

// memBackend is an in-memory Backend with an injectable save error.
type memBackend struct {
	mu      sync.Mutex
	saved   map[string]string
	saves   int
	saveErr error
	onSave  func()
}

func (m *memBackend) Load() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.saved))
	for k, v := range m.saved {
		out[k] = v
	}
	return out, nil
}

func (m *memBackend) Save(entries map[string]string) error {
	if m.onSave != nil {
		m.onSave()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = entries
	return nil
}

func TestStoreSetGet(t *testing.T) {
	st, _ := openTemp(t, Options{})
	key := testKey(t)

	existed, err := st.Set("DB_PASS", "s3cr3t", key)
	require.NoError(t, err)
	assert.False(t, existed)

	value, ok, err := st.Get("DB_PASS", key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "s3cr3t", value)
}

func TestStoreIsolation(t *testing.T) {
	st, _ := openTemp(t, Options{})
	key := testKey(t)

	_, err := st.Set("A", "1", key)
	require.NoError(t, err)
	_, err = st.Set("B", "2", key)
	require.NoError(t, err)

	for name, want := range map[string]string{"A": "1", "B": "2"} {
		got, ok, err := st.Get(name, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, []string{"A", "B"}, st.Names())
}

func TestStoreOverwrite(t *testing.T) {
	st, _ := openTemp(t, Options{})
	key := testKey(t)

	_, err := st.Set("K", "first", key)
	require.NoError(t, err)
	existed, err := st.Set("K", "second", key)
	require.NoError(t, err)
	assert.True(t, existed)

	got, _, err := st.Get("K", key)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
	assert.Equal(t, 1, st.Len())
}

func TestStoreMissingKey(t *testing.T) {
	st, _ := openTemp(t, Options{})

	value, ok, err := st.Get("NOPE", testKey(t))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	for _, c := range []secrets.Cipher{secrets.AES256GCM, secrets.ChaCha20Poly1305} {
		t.Run(string(c), func(t *testing.T) {
			st, path := openTemp(t, Options{Cipher: c})
			key := testKey(t)

			_, err := st.Set("K", "V", key)
			require.NoError(t, err)

			reopened, err := Open(NewFileBackend(path), Options{Cipher: c})
			require.NoError(t, err)

			got, ok, err := reopened.Get("K", key)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "V", got)
		})
	}
}

func TestStoreFileNeverHoldsPlaintext(t *testing.T) {
	st, path := openTemp(t, Options{})
	_, err := st.Set("DB_PASS", "s3cr3t", testKey(t))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DB_PASS")
	assert.NotContains(t, string(data), "s3cr3t")
}

func TestStoreGetWrongKey(t *testing.T) {
	st, _ := openTemp(t, Options{})
	_, err := st.Set("K", "V", testKey(t))
	require.NoError(t, err)

	other, err := secrets.ParseSecretKey("another_encryption_key_32_bytes!")
	require.NoError(t, err)

	_, ok, err := st.Get("K", other)
	assert.True(t, ok)
	assert.ErrorIs(t, err, kerrors.ErrAuthenticationFailed)
}

func TestStoreGetMalformedEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env_vars.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"K": "not-an-envelope"}`), 0600))

	st, err := Open(NewFileBackend(path), Options{})
	require.NoError(t, err)

	_, _, err = st.Get("K", testKey(t))
	assert.ErrorIs(t, err, kerrors.ErrMalformedEnvelope)
}

func TestStoreRejectsBadKeyLength(t *testing.T) {
	st, _ := openTemp(t, Options{})
	bad := secrets.SecretKey("default_encryption_key")

	_, err := st.Set("K", "V", bad)
	assert.ErrorIs(t, err, kerrors.ErrInvalidKeyLength)
	assert.Equal(t, 0, st.Len())

	_, _, err = st.Get("K", bad)
	assert.ErrorIs(t, err, kerrors.ErrInvalidKeyLength)
}

func TestStoreRejectsEmptyName(t *testing.T) {
	st, _ := openTemp(t, Options{})
	_, err := st.Set("", "V", testKey(t))
	assert.ErrorIs(t, err, kerrors.ErrInvalidName)
}

func TestStoreRejectsInvalidUTF8Value(t *testing.T) {
	st, path := openTemp(t, Options{})
	key := testKey(t)

	_, err := st.Set("BIN", "\xff\xfe", key)
	require.ErrorIs(t, err, kerrors.ErrInvalidValue)
	assert.Equal(t, 0, st.Len())

	_, ok, err := st.Get("BIN", key)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing should be written for a rejected value")

	// Valid multi-byte text still round-trips.
	_, err = st.Set("GREETING", "héllo wörld ✓", key)
	require.NoError(t, err)
	value, ok, err := st.Get("GREETING", key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "héllo wörld ✓", value)
}

func TestStoreRejectsInvalidUTF8Name(t *testing.T) {
	st, path := openTemp(t, Options{})
	key := testKey(t)

	_, err := st.Set("A\xff", "v", key)
	require.ErrorIs(t, err, kerrors.ErrInvalidName)
	assert.Empty(t, st.Names())

	_, err = st.Set("CAFÉ", "v", key)
	require.NoError(t, err)

	reopened, err := Open(NewFileBackend(path), Options{})
	require.NoError(t, err)
	assert.Equal(t, st.Names(), reopened.Names())

	value, ok, err := reopened.Get("CAFÉ", key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestStoreUnreadableFileIsNotDiscarded(t *testing.T) {
	// A directory in place of the file reads with an error but is not corrupt.
	path := filepath.Join(t.TempDir(), "env_vars.json")
	require.NoError(t, os.Mkdir(path, 0700))

	_, err := Open(NewFileBackend(path), Options{DiscardCorrupt: true})
	require.ErrorIs(t, err, kerrors.ErrStoreUnreadable)
	assert.NotErrorIs(t, err, kerrors.ErrCorruptStore)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStoreRejectsUnknownCipher(t *testing.T) {
	_, err := Open(&memBackend{}, Options{Cipher: "rot13"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidCipher)
}

func TestStoreCorruptFilePolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env_vars.json")
	require.NoError(t, os.WriteFile(path, []byte("{garbage"), 0600))

	_, err := Open(NewFileBackend(path), Options{})
	assert.ErrorIs(t, err, kerrors.ErrCorruptStore)

	st, err := Open(NewFileBackend(path), Options{DiscardCorrupt: true})
	require.NoError(t, err)
	assert.Equal(t, 0, st.Len())

	_, err = st.Set("K", "V", testKey(t))
	require.NoError(t, err)

	reopened, err := Open(NewFileBackend(path), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"K"}, reopened.Names())
}

func TestStoreSaveFailureLeavesMemoryUnchanged(t *testing.T) {
	backend := &memBackend{}
	st, err := Open(backend, Options{})
	require.NoError(t, err)
	key := testKey(t)

	_, err = st.Set("K", "first", key)
	require.NoError(t, err)

	backend.saveErr = fmt.Errorf("%w: disk full", kerrors.ErrPersistFailed)
	_, err = st.Set("K", "second", key)
	assert.ErrorIs(t, err, kerrors.ErrPersistFailed)

	_, err = st.Set("OTHER", "x", key)
	assert.ErrorIs(t, err, kerrors.ErrPersistFailed)

	got, _, err := st.Get("K", key)
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.Equal(t, []string{"K"}, st.Names())

	_, err = st.Unset("K")
	assert.ErrorIs(t, err, kerrors.ErrPersistFailed)
	assert.Equal(t, 1, st.Len())
}

func TestStoreUnset(t *testing.T) {
	backend := &memBackend{}
	st, err := Open(backend, Options{})
	require.NoError(t, err)
	key := testKey(t)

	_, err = st.Set("K", "V", key)
	require.NoError(t, err)

	removed, err := st.Unset("K")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, backend.saved)

	saves := backend.saves
	removed, err = st.Unset("K")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, saves, backend.saves, "unsetting a missing name must not write")

	_, ok, err := st.Get("K", key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreReaderNeverSeesUnpersistedWrite(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	backend := &memBackend{}
	backend.onSave = func() {
		close(entered)
		<-release
	}

	st, err := Open(backend, Options{})
	require.NoError(t, err)
	key := testKey(t)

	done := make(chan error, 1)
	go func() {
		_, err := st.Set("K", "V", key)
		done <- err
	}()

	<-entered
	got := make(chan bool, 1)
	go func() {
		_, ok, _ := st.Get("K", key)
		got <- ok
	}()

	close(release)
	require.NoError(t, <-done)
	// The reader waited for the writer, so it saw the persisted value.
	assert.True(t, <-got)
	assert.Contains(t, backend.saved, "K")
}

func TestStoreConcurrentAccess(t *testing.T) {
	st, path := openTemp(t, Options{})
	key := testKey(t)

	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if _, err := st.Set(fmt.Sprintf("VAR_%02d", i), fmt.Sprintf("value-%d", i), key); err != nil {
				errs <- err
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			if _, _, err := st.Get(fmt.Sprintf("VAR_%02d", i), key); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent access: %v", err)
	}

	reopened, err := Open(NewFileBackend(path), Options{})
	require.NoError(t, err)
	require.Equal(t, 50, reopened.Len())
	for i := 0; i < 50; i++ {
		got, ok, err := reopened.Get(fmt.Sprintf("VAR_%02d", i), key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, fmt.Sprintf("value-%d", i), got)
	}
}

func TestStoreOpenPropagatesUnexpectedErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Open(loadErrBackend{boom}, Options{DiscardCorrupt: true})
	assert.ErrorIs(t, err, boom)
}

type loadErrBackend struct{ err error }

func (b loadErrBackend) Load() (map[string]string, error) { return nil, b.err }
func (b loadErrBackend) Save(map[string]string) error      { return nil }
