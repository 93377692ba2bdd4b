package arguments

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// AppMetadata :
// Describes some properties used to identify the current instance of
// the application. This includes information about the way the engine
// should behave (port exposed to the clients, wall-clock budget for a
// turn generation, default battle engine) along with identification
// values used during the logging process to distinguish between the
// running instances of the application.
//
// The `InstanceID` describes an identifier of the current instance of
// the server. Each instance has its own identifier which allows to
// start several instances of a given app on the same machine. This
// value is generated at runtime and changes upon restart.
//
// The `Environment` is a string describing the configuration used to
// start this application. Typical values include `local`, `staging`
// or `production` and refer to the name of the configuration file
// that was parsed.
// The default value is "unknown".
//
// The `Port` specifies on which port the end points defined by the
// app can be accessed.
// The default value is 3000.
//
// The `TurnBudget` defines the wall-clock duration allocated to the
// generation of a single turn. A turn exceeding this budget will be
// cancelled and the pre-turn state restored.
// The default value is 30 seconds.
//
// The `ScheduleInterval` defines how often the turn scheduler checks
// the live games for a turn ready to be generated (i.e. every empire
// has submitted its commands).
// The default value is 5 seconds.
//
// The `AlternateBattleEngine` defines whether games created by this
// instance should resolve combats with the alternative (continuous
// board) battle engine rather than the standard one.
// The default value is `false`.
type AppMetadata struct {
	InstanceID            string `json:"instance_id"`
	Environment           string `json:"environment"`
	Port                  int
	TurnBudget            time.Duration
	ScheduleInterval      time.Duration
	AlternateBattleEngine bool
}

// Parse :
// Used to parse the app arguments and produce the corresponding data.
// The configuration file referenced by the input name is located and
// read through viper so that the rest of the application can fetch
// its own settings from it (logger, database, etc.). Values that are
// relevant at the application level are extracted right away.
//
// The `configFile` is a string describing the configuration file
// provided by the runtime of the application, without extension.
//
// This function returns the built-in application's properties.
func Parse(configFile string) AppMetadata {
	// Allow environment variables to override configuration keys.
	viper.SetEnvPrefix("ENV")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()

	// Name of the configuration file (without extension).
	viper.SetConfigName(configFile)

	// Look for the configuration in the working directory and in
	// the common `data/config` directory.
	viper.AddConfigPath(".")
	viper.AddConfigPath("data/config")

	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("could not parse input configuration \"%s\" (err: %v)", configFile, err))
	}

	// Create the default application properties.
	metadata := AppMetadata{
		InstanceID:            uuid.New().String(),
		Environment:           "unknown",
		Port:                  3000,
		TurnBudget:            30 * time.Second,
		ScheduleInterval:      5 * time.Second,
		AlternateBattleEngine: false,
	}

	// Fetch values from the configuration produced by the runtime.
	if len(configFile) > 0 {
		metadata.Environment = configFile
	}
	if viper.IsSet("App.Port") {
		metadata.Port = viper.GetInt("App.Port")
	}
	if viper.IsSet("Engine.TurnBudget") {
		metadata.TurnBudget = viper.GetDuration("Engine.TurnBudget")
	}
	if viper.IsSet("Engine.ScheduleInterval") {
		metadata.ScheduleInterval = viper.GetDuration("Engine.ScheduleInterval")
	}
	if viper.IsSet("Engine.AlternateBattleEngine") {
		metadata.AlternateBattleEngine = viper.GetBool("Engine.AlternateBattleEngine")
	}

	return metadata
}
