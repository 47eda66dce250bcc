package loader

import (
	"fmt"
	"path"
	"strings"
)

// Parses an S3 URI and returns the bucket and key.
//
// @example:
//
//	input: s3://my-bucket/path/to/file
//	output: "my-bucket", "path/to/file"
func parseS3Uri(str string) (bucket string, key string, err error) {
	if !strings.HasPrefix(str, "s3://") {
		return "", "", fmt.Errorf("not an S3 URI: %s", str)
	}

	workingString := strings.TrimPrefix(str, "s3://")
	resultArr := strings.SplitN(workingString, "/", 2)

	if len(resultArr) == 1 {
		return resultArr[0], "", nil
	}

	return resultArr[0], resultArr[1], nil
}

// baseName strips any key prefix so filename metadata parsing sees only the
// final path component.
func baseName(key string) string {
	return path.Base(key)
}
