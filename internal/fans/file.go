package fans

import (
	"math"
	"os/user"
	"path/filepath"
	"strings"

	"pifand/internal/configuration"
	"pifand/internal/util"
)

// FileFan writes the duty cycle percentage to a file. Useful for
// development and testing without fan hardware.
type FileFan struct {
	Config    configuration.FanConfig `json:"configuration"`
	DutyCycle float64                 `json:"dutyCycle"`
}

func (fan *FileFan) GetId() string {
	return fan.Config.ID
}

func (fan *FileFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan *FileFan) Open() error {
	// no resource to acquire, the file is created on first write
	return nil
}

func (fan *FileFan) SetDutyCycle(percent float64) error {
	percent = util.Coerce(percent, MinDutyCycle, MaxDutyCycle)

	filePath := fan.Config.File.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}

	err := util.WriteIntToFileAtomic(int(math.Round(percent)), filePath)
	if err != nil {
		return err
	}
	fan.DutyCycle = percent
	return nil
}

func (fan *FileFan) GetDutyCycle() float64 {
	return fan.DutyCycle
}

func (fan *FileFan) Close() error {
	return nil
}
