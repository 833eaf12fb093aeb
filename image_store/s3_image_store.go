package image_store

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/murmurapp/murmur/utils"
	Logger "github.com/murmurapp/murmur/utils/log"
)

const (
	TestS3Bucket      = "murmur-user-image-dev"
	ProdS3ImageBucket = "murmur-user-image"
	CloudFrontPrefix  = "https://media.murmur.app/"
)

type S3ImageStore struct {
	bucket   string
	uploader *s3manager.Uploader
	svc      *s3.S3
}

func NewS3ImageStore(bucket string) (*S3ImageStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String("us-west-1"),
	})
	if err != nil {
		return nil, err
	}

	uploader := s3manager.NewUploader(sess)

	return &S3ImageStore{
		bucket:   bucket,
		uploader: uploader,
		svc:      s3.New(session.Must(sess, err)),
	}, nil
}

// Key is the md5 of the content plus the original extension, so re-uploading
// the same image is a no-op instead of a new object.
func (s *S3ImageStore) generateKey(content []byte, ext string) (string, error) {
	key, err := utils.TextToMd5Hash(string(content))
	if err != nil {
		return "", err
	}
	if len(key) == 0 {
		return "", errors.New("generate empty s3 key, invalid")
	}
	return key + ext, nil
}

func (s *S3ImageStore) Store(body io.Reader, ext string) (key string, err error) {
	content, err := ioutil.ReadAll(body)
	if err != nil {
		return "", err
	}

	key, err = s.generateKey(content, ext)
	if err != nil {
		Logger.Log.Warn("fail to generate s3 key for uploaded image, err:", err)
		return "", err
	}

	if !s.IsKeyExisted(key) {
		// Upload the file to S3.
		_, err = s.uploader.Upload(&s3manager.UploadInput{
			ACL:    aws.String("public-read"),
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(content),
		})
	}
	return key, err
}

func (s *S3ImageStore) IsKeyExisted(key string) bool {
	_, err := s.svc.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

func (s *S3ImageStore) GetUrlFromKey(key string) string {
	return CloudFrontPrefix + key
}

func (s *S3ImageStore) CleanUp() {
	// do nothing for s3
}
