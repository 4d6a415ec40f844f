package lyrics

import "os"

// LoadFile parses the lyric file at path.
func LoadFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
