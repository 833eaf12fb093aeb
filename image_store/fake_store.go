package image_store

import (
	"io"
	"io/ioutil"
	"sync"

	"github.com/murmurapp/murmur/utils"
)

// FakeImageStore keeps uploads in memory, for tests.
type FakeImageStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewFakeImageStore() *FakeImageStore {
	return &FakeImageStore{Objects: make(map[string][]byte)}
}

func (f *FakeImageStore) Store(body io.Reader, ext string) (key string, err error) {
	content, err := ioutil.ReadAll(body)
	if err != nil {
		return "", err
	}
	hash, err := utils.TextToMd5Hash(string(content))
	if err != nil {
		return "", err
	}
	key = hash + ext

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[key] = content
	return key, nil
}

func (f *FakeImageStore) GetUrlFromKey(key string) string {
	return "https://fake.murmur.test/" + key
}

func (f *FakeImageStore) CleanUp() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects = make(map[string][]byte)
}
