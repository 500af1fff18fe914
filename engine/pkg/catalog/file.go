package catalog

import (
	"fmt"
	"os"

	"github.com/njtc406/emberpool/engine/pkg/utils/version"
	"github.com/pelletier/go-toml/v2"
)

// fileEntry 目录文件中的一项
//
//	[[prefab]]
//	name = "Bullet"
//	preload = 32
//	factory = "bullet" # 可选,默认和name一样
type fileEntry struct {
	Name    string `toml:"name"`
	Preload int    `toml:"preload"`
	Factory string `toml:"factory"`
}

// fileCatalog min_version可选,高于当前版本时拒绝加载
type fileCatalog struct {
	MinVersion string      `toml:"min_version"`
	Prefabs    []fileEntry `toml:"prefab"`
}

// Parse 解析toml格式的目录,工厂必须已经通过SetFactory注册
func Parse(data []byte) ([]Definition, error) {
	var fc fileCatalog
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if fc.MinVersion != "" {
		ok, err := version.IsVersionSufficient(version.Version, fc.MinVersion)
		if err != nil {
			return nil, fmt.Errorf("catalog min_version [%s]: %w", fc.MinVersion, err)
		}
		if !ok {
			return nil, fmt.Errorf("catalog requires version %s, current %s", fc.MinVersion, version.Version)
		}
	}

	b := New()
	for i, e := range fc.Prefabs {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog prefab #%d has no name", i)
		}
		factoryName := e.Factory
		if factoryName == "" {
			factoryName = e.Name
		}
		f, err := GetFactory(factoryName)
		if err != nil {
			return nil, fmt.Errorf("catalog prefab [%s]: %w", e.Name, err)
		}
		b.Add(e.Name, e.Preload, f)
	}
	return b.Definitions(), nil
}

func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}
