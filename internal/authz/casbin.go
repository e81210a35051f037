package authz

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

var (
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	once     sync.Once
)

// GetEnforcer returns a singleton Casbin enforcer backed by the files under
// configs/. Policy rows map a role to the paths and methods it may call;
// the credential core only supplies the role.
func GetEnforcer() *casbin.Enforcer {
	once.Do(func() {
		e, err := newEnforcer(
			filepath.FromSlash("configs/casbin_model.conf"),
			filepath.FromSlash("configs/casbin_policy.csv"),
		)
		if err != nil {
			log.Printf("casbin: %v", err)
			return
		}
		mu.Lock()
		enforcer = e
		mu.Unlock()
	})

	mu.RLock()
	defer mu.RUnlock()
	return enforcer
}

// SetEnforcer installs an enforcer built elsewhere (tests, alternate
// config roots).
func SetEnforcer(e *casbin.Enforcer) {
	once.Do(func() {})
	mu.Lock()
	enforcer = e
	mu.Unlock()
}

// NewEnforcerFromFiles builds an enforcer from explicit file paths.
func NewEnforcerFromFiles(modelPath, policyPath string) (*casbin.Enforcer, error) {
	return newEnforcer(modelPath, policyPath)
}

func newEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromFile(modelPath)
	if err != nil {
		return nil, err
	}
	a := fileadapter.NewAdapter(policyPath)
	e, err := casbin.NewEnforcer(m, a)
	if err != nil {
		return nil, err
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, err
	}
	return e, nil
}
