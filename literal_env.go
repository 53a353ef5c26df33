package provision

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
)

// EnvLiterals returns a LiteralProvider backed by dotenv files and the process environment.
// Files are read with godotenv.Read and never exported into the process environment; a value
// found in a file wins over the environment. Names are looked up upper-cased, with '.' and '-'
// replaced by '_', so the key name "db.host" is served by DB_HOST.
//
// With no files given, ".env" is read if it exists.
func EnvLiterals(files ...string) (LiteralProvider, error) {
	optional := len(files) == 0
	if optional {
		files = []string{".env"}
	}

	values := make(map[string]string)
	for _, file := range files {
		m, err := godotenv.Read(file)
		if err != nil {
			if optional && os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading literals from %s: %w", file, err)
		}
		for k, v := range m {
			values[k] = v
		}
	}

	return func(name string, _ reflect.Type) (any, bool, error) {
		envName := envNameFor(name)
		if v, ok := values[envName]; ok {
			return v, true, nil
		}
		if v, ok := os.LookupEnv(envName); ok {
			return v, true, nil
		}
		return nil, false, nil
	}, nil
}

var envNameReplacer = strings.NewReplacer(".", "_", "-", "_")

func envNameFor(name string) string {
	return strings.ToUpper(envNameReplacer.Replace(name))
}
