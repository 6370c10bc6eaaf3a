package mal

const VERSION = "0.1.0"

func Version() string {
	return VERSION
}
