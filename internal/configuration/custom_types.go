package configuration

import (
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// secondsToDurationHookFunc returns a mapstructure decode hook that treats
// bare numeric values targeting a time.Duration as whole seconds.
//
// The predecessor of this daemon configured its sampling interval as a plain
// integer second count (wait_time = 10), without this hook viper would decode
// such a value as nanoseconds. Duration strings ("10s", "1m") are left for
// the regular string hook.
func secondsToDurationHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != durationType {
			return data, nil
		}

		switch v := data.(type) {
		case int:
			return time.Duration(v) * time.Second, nil
		case int32:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		}

		return data, nil
	}
}
