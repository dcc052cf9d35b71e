package domain

type Asset struct {
	Path        string
	ContentType string
	Body        []byte
}
