/*
* Assets on disk share one format: a container holding the registered type
* name of the asset and an Inner object with the user defined data.
*
*	{
*	  "Type": "github.com/bradbev/tileworld/src/tileworld.Config",
*	  "Inner": { ... }
*	}
*
* Every loaded Asset is a singleton keyed by its path, so tuning a live
* asset changes it everywhere.  Runtime state belongs in actors; use
* NewInstance to get a private copy of an asset.
*
* Exported pointer fields that point at other loaded assets are saved as a
* reference {"Type", "Path"} and loaded by loading that path.  Pointers to
* anything else are transient and are not saved.
 */

package asset

import (
	"errors"
	"fmt"
	"io/fs"
	systemLog "log"
	"os"
	"reflect"
)

var log = systemLog.New(os.Stderr, "Asset ", systemLog.Ltime)

var (
	ErrNotRegistered = errors.New("asset type is not registered")
	ErrNoWritableFS  = errors.New("no writable file system registered")
	ErrNotFound      = errors.New("path not found in any registered file system")
)

// Path is a distinct type from string so the editor can offer file
// completion for it.
type Path string

// Asset can be any pointer to a registered struct.
type Asset interface{}

type PostLoadingAsset interface {
	PostLoad()
}

type PreSavingAsset interface {
	PreSave()
}

// Any type that implements DefaultInitializer has DefaultInitialize called
// when it is created by the asset system, before data is loaded into it.
// Nested values are initialized before their parents.
type DefaultInitializer interface {
	DefaultInitialize()
}

type FactoryFunc func() (Asset, error)

type Descriptor struct {
	Name     string
	FullName string
	Create   FactoryFunc
	Type     reflect.Type
}

func RegisterFileSystem(filesystem fs.FS, priority int) error {
	return manager.addFS(&fsEntry{fsys: filesystem, priority: priority})
}

func RegisterWritableFileSystem(filesystem WritableFileSystem) error {
	manager.writeFS = filesystem
	return nil
}

func RegisterAssetFactory(zeroAsset any, factory FactoryFunc) {
	manager.register(zeroAsset, factory)
}

func RegisterAsset(zeroAsset any) {
	zeroType := reflect.TypeOf(zeroAsset)
	manager.register(zeroAsset, func() (Asset, error) {
		return reflect.New(zeroType).Interface(), nil
	})
}

func ReadFile(path Path) ([]byte, error) {
	return manager.readFile(path)
}

type LoadOptions struct {
	// ForceReload reads the file again.  An asset already in memory is
	// reloaded in place so existing pointers to it see the new data.
	ForceReload bool
}

func Load(path Path) (Asset, error) {
	return manager.load(path, LoadOptions{})
}

func LoadWithOptions(path Path, options LoadOptions) (Asset, error) {
	return manager.load(path, options)
}

// LoadAs loads path and checks it holds a *T.
func LoadAs[T any](path Path) (*T, error) {
	a, err := Load(path)
	if err != nil {
		return nil, err
	}
	t, ok := a.(*T)
	if !ok {
		var zero T
		_, want := ObjectTypeName(zero)
		_, got := ObjectTypeName(a)
		return nil, fmt.Errorf("%s holds %s, wanted %s", path, got, want)
	}
	return t, nil
}

// NewInstance returns a deep copy of a that is not tied to any path.
// Asset references inside it still point at the shared assets.
func NewInstance(a Asset) (Asset, error) {
	return manager.newInstance(a)
}

func Save(path Path, toSave Asset) error {
	return manager.save(path, toSave)
}

func LoadPathForAsset(a Asset) (Path, error) {
	path, ok := manager.assetToPath[a]
	if !ok {
		return path, fmt.Errorf("asset %T was not loaded from a path", a)
	}
	return path, nil
}

// WalkFiles is like fs.WalkDir over every registered readable file system,
// in priority order.
func WalkFiles(fn fs.WalkDirFunc) error {
	return manager.walkFiles(fn)
}

// FilterFilesByType returns the paths of every asset file holding a T.
func FilterFilesByType[T any]() ([]string, error) {
	return manager.filterFilesByType(reflect.TypeOf((*T)(nil)).Elem())
}

// Descriptors lists the registered types sorted by name.
func Descriptors() []*Descriptor {
	return manager.descriptorList
}

// Reset forgets every registration and loaded asset.
func Reset() {
	manager = newManager()
}

func ObjectTypeName(obj any) (name string, fullname string) {
	return TypeName(reflect.TypeOf(obj))
}

func TypeName(t reflect.Type) (name string, fullname string) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name(), t.PkgPath() + "." + t.Name()
}
