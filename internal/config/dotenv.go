package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnv carga path si viene; si no, busca ".env" en el cwd y sus padres
// (hasta maxDepth) y carga el primero. No pisa variables ya definidas.
// Si no hay .env no hace nada (prod usa env real).
func LoadDotEnv(path string, maxDepth int) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if maxDepth <= 0 {
		maxDepth = 6
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil
	}

	for i := 0; i <= maxDepth; i++ {
		p := filepath.Join(dir, ".env")
		if _, err := os.Stat(p); err == nil {
			return godotenv.Load(p)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil
}
