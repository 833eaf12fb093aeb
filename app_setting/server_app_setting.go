package app_setting

import (
	"io/ioutil"
	"log"

	"gopkg.in/yaml.v2"
)

// This is the tunables config for the api server.
type ServerAppSetting struct {
	// Address the http server binds to, e.g. ":8080".
	SERVER_ADDR string `yaml:"SERVER_ADDR"`
	// Default number of posts per feed page when the client doesn't ask.
	FEED_DEFAULT_PAGE_SIZE int `yaml:"FEED_DEFAULT_PAGE_SIZE"`
	// Hard cap on posts per feed page regardless of what the client asks.
	FEED_MAX_PAGE_SIZE int `yaml:"FEED_MAX_PAGE_SIZE"`
	// S3 bucket user images are uploaded to.
	IMAGE_BUCKET string `yaml:"IMAGE_BUCKET"`
	// Timeout in seconds for the link preview metadata fetch.
	PREVIEW_FETCH_TIMEOUT_SECOND int64 `yaml:"PREVIEW_FETCH_TIMEOUT_SECOND"`
}

func ParseServerAppSetting(path string) ServerAppSetting {
	c := ServerAppSetting{}
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		log.Fatal("yamlFile. get err: ", err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		log.Fatal("Unmarshal: ", err)
	}
	return c
}

// DefaultServerAppSetting is used when no config file is provided, notably in
// tests and local development.
func DefaultServerAppSetting() ServerAppSetting {
	return ServerAppSetting{
		SERVER_ADDR:                  ":8080",
		FEED_DEFAULT_PAGE_SIZE:       20,
		FEED_MAX_PAGE_SIZE:           50,
		IMAGE_BUCKET:                 "murmur-user-image-dev",
		PREVIEW_FETCH_TIMEOUT_SECOND: 5,
	}
}
