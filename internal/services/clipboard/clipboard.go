// Package clipboard copies rendered snapshot documents to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier places a rendered document on the system clipboard.
type Copier interface {
	Copy(document string) error
}

// Service is the github.com/atotto/clipboard backed Copier.
type Service struct{}

// NewService constructs the default clipboard Copier.
func NewService() *Service {
	return &Service{}
}

// Copy writes the document to the system clipboard, replacing its contents.
func (service *Service) Copy(document string) error {
	return clipboard.WriteAll(document)
}

var _ Copier = (*Service)(nil)
