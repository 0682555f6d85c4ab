package cli

import (
	"github.com/harish-garg/droidctl/internal/adb"
	"github.com/harish-garg/droidctl/internal/executor"
)

// BridgeFactory creates device bridges.
type BridgeFactory interface {
	NewBridge(serial string) executor.Bridge
}

// defaultFactory wraps the adb binary.
type defaultFactory struct{}

func (defaultFactory) NewBridge(serial string) executor.Bridge {
	path, err := adb.Find()
	if err != nil {
		// A client with no binary reports no device; the executor's
		// connectivity gate turns that into the uniform error message.
		debugf("adb detection failed: %v", err)
	} else {
		debugf("using adb at %s", path)
	}
	return adb.NewClient(path, serial)
}

// bridgeFactory is the package-level factory, replaceable for testing.
var bridgeFactory BridgeFactory = defaultFactory{}

// SetBridgeFactory sets the bridge factory (for testing).
func SetBridgeFactory(f BridgeFactory) {
	bridgeFactory = f
}

// ResetBridgeFactory resets to the default factory.
func ResetBridgeFactory() {
	bridgeFactory = defaultFactory{}
}
