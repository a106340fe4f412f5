package platform

import (
	"os"
	"strconv"
	"strings"
)

const (
	PortLocation    = "cisample.port"
	HostLocation    = "cisample.host"
	AdminLocation   = "cisample.admin.port"
	VerboseLocation = "cisample.verbose"

	// DefaultPort is used when neither the flag nor the environment carries one.
	DefaultPort = 3000
)

type EnvFlag struct {
	Name    string
	AltName string
}

func NewEnvFlag(name string) EnvFlag {
	return EnvFlag{
		Name:    name,
		AltName: NormalizeEnvName(name),
	}
}

func (f EnvFlag) GetValue(defaultValue func() string) string {
	if v, found := os.LookupEnv(f.Name); found {
		return v
	}
	if len(f.AltName) > 0 {
		if v, found := os.LookupEnv(f.AltName); found {
			return v
		}
	}

	return defaultValue()
}

// GetNonEmptyValue is GetValue with blank variables treated as unset.
func (f EnvFlag) GetNonEmptyValue(defaultValue func() string) string {
	for _, name := range []string{f.Name, f.AltName} {
		if name == "" {
			continue
		}
		if v, found := os.LookupEnv(name); found && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return defaultValue()
}

func (f EnvFlag) GetValueAsInt(defaultValue int) int {
	useDefaultValue := false
	s := f.GetValue(func() string {
		useDefaultValue = true
		return ""
	})
	if useDefaultValue {
		return defaultValue
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return defaultValue
	}
	return int(v)
}

func (f EnvFlag) GetValueAsBool(defaultValue bool) bool {
	s := f.GetValue(func() string { return "" })
	if s == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return v
}

func NormalizeEnvName(name string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), ".", "_")
}

// GetPortString reads "cisample.port", then the conventional PORT variable. Blank values count as unset.
// The raw value is returned so that callers can reject garbage instead of silently using the default.
func GetPortString() string {
	return NewEnvFlag(PortLocation).GetNonEmptyValue(func() string {
		return EnvFlag{Name: "PORT"}.GetNonEmptyValue(func() string {
			return strconv.Itoa(DefaultPort)
		})
	})
}

func GetHost() string {
	return NewEnvFlag(HostLocation).GetValue(func() string { return "" })
}

func GetAdminPort() int {
	return NewEnvFlag(AdminLocation).GetValueAsInt(0)
}

func GetVerbose() bool {
	return NewEnvFlag(VerboseLocation).GetValueAsBool(false)
}
