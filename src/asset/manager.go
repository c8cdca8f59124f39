package asset

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"reflect"
	"strings"

	"golang.org/x/exp/slices"
)

// container is the on disk layout of every asset file.
type container struct {
	Type  string
	Inner json.RawMessage
}

type savedContainer struct {
	Type  string
	Inner any
}

// reference is how a pointer to another loaded asset is saved.
type reference struct {
	Type string
	Path Path
}

type fsEntry struct {
	fsys     fs.FS
	priority int
}

type assetManager struct {
	fileSystems    []*fsEntry
	descriptors    map[string]*Descriptor
	descriptorList []*Descriptor
	writeFS        WritableFileSystem

	// assetToPath is needed when saving to turn asset pointers back into
	// references.
	assetToPath map[Asset]Path
	pathToAsset map[Path]Asset
}

var manager = newManager()

func newManager() *assetManager {
	return &assetManager{
		descriptors: map[string]*Descriptor{},
		assetToPath: map[Asset]Path{},
		pathToAsset: map[Path]Asset{},
	}
}

// addFS keeps file systems sorted so lower priorities are searched first.
func (m *assetManager) addFS(entry *fsEntry) error {
	if entry.fsys == nil {
		return fmt.Errorf("nil file system")
	}
	m.fileSystems = append(m.fileSystems, entry)
	slices.SortStableFunc(m.fileSystems, func(a, b *fsEntry) int {
		return a.priority - b.priority
	})
	return nil
}

func (m *assetManager) readFile(path Path) ([]byte, error) {
	for _, entry := range m.fileSystems {
		data, err := fs.ReadFile(entry.fsys, string(path))
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
}

func (m *assetManager) walkFiles(fn fs.WalkDirFunc) error {
	var last error
	for _, entry := range m.fileSystems {
		err := fs.WalkDir(entry.fsys, ".", func(path string, d fs.DirEntry, err error) error {
			last = fn(path, d, err)
			return last
		})
		if err == fs.SkipAll || last == fs.SkipAll {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *assetManager) filterFilesByType(typ reflect.Type) ([]string, error) {
	_, want := TypeName(typ)
	var ret []string
	err := m.walkFiles(func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := m.readFile(Path(path))
		if err != nil {
			return err
		}
		var c container
		if json.Unmarshal(data, &c) != nil {
			// not every json file is an asset
			return nil
		}
		if c.Type == want && !slices.Contains(ret, path) {
			ret = append(ret, path)
		}
		return nil
	})
	return ret, err
}

func (m *assetManager) register(zeroAsset any, factory FactoryFunc) {
	zeroType := reflect.TypeOf(zeroAsset)
	if zeroType.Kind() != reflect.Struct {
		log.Panicf("RegisterAssetFactory must be called with a struct value, got %T.  This is a programming error", zeroAsset)
	}

	create := func() (Asset, error) {
		a, err := factory()
		if err != nil {
			return nil, err
		}
		defaultInitialize(a)
		return a, nil
	}

	name, fullname := TypeName(zeroType)
	if _, exists := m.descriptors[fullname]; exists {
		log.Printf("re-registering %s", fullname)
		m.descriptorList = slices.DeleteFunc(m.descriptorList, func(d *Descriptor) bool {
			return d.FullName == fullname
		})
	}
	d := &Descriptor{
		Name:     name,
		FullName: fullname,
		Create:   create,
		Type:     zeroType,
	}
	m.descriptors[fullname] = d
	m.descriptorList = append(m.descriptorList, d)
	slices.SortFunc(m.descriptorList, func(a, b *Descriptor) int {
		return strings.Compare(a.Name, b.Name)
	})
}

func (m *assetManager) descriptorFor(a Asset) (*Descriptor, error) {
	_, fullname := ObjectTypeName(a)
	d, ok := m.descriptors[fullname]
	if !ok {
		return nil, fmt.Errorf("%s: %w", fullname, ErrNotRegistered)
	}
	return d, nil
}
