package shoutrrr

import (
	"fmt"

	"github.com/containrrr/shoutrrr"
	"github.com/qdm12/gosettings"
	"github.com/qdm12/gotree"
)

type Settings struct {
	// Addresses are shoutrrr service addresses.
	// An empty list means notifications are disabled.
	Addresses []string
	// DefaultTitle is injected as the title parameter of each
	// address not setting one already.
	DefaultTitle string
	Logger       Erroer
}

type Erroer interface {
	Error(s string)
}

func (s *Settings) SetDefaults() {
	s.Addresses = gosettings.DefaultSlice(s.Addresses, []string{})
	s.DefaultTitle = gosettings.DefaultComparable(s.DefaultTitle, "IPGet")
	s.Logger = gosettings.DefaultComparable[Erroer](s.Logger, &noopLogger{})
}

func (s Settings) Validate() (err error) {
	_, err = shoutrrr.CreateSender(s.Addresses...)
	if err != nil {
		return fmt.Errorf("shoutrrr addresses: %w", err)
	}
	return nil
}

func (s Settings) String() string {
	return s.ToLinesNode().String()
}

func (s Settings) ToLinesNode() *gotree.Node {
	if len(s.Addresses) == 0 {
		return gotree.New("Shoutrrr: disabled")
	}

	node := gotree.New("Shoutrrr")
	node.Appendf("Default title: %s", s.DefaultTitle)
	childNode := node.Appendf("Addresses")
	for _, address := range s.Addresses {
		childNode.Appendf(address)
	}
	return node
}

type noopLogger struct{}

func (l noopLogger) Error(_ string) {}
