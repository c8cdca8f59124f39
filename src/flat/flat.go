// flat hosts the streamed tile world in ebiten: actors and components in a
// World, drawn through a Camera, with Bridge spawning them for the streamer.

package flat

import (
	systemLog "log"
	"os"

	"github.com/bradbev/tileworld/src/asset"
)

var log = systemLog.New(os.Stderr, "Flat ", systemLog.Ltime)

func RegisterAllFlatTypes() {
	asset.RegisterAsset(Atlas{})
	asset.RegisterAsset(Font{})
	asset.RegisterAsset(Enemy{})
}
