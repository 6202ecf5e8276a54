package styletransfer

import (
	"github.com/justyntemme/stylego/pkg/framework/param"
	"github.com/justyntemme/stylego/pkg/framework/style"
)

// Parameter IDs. Stable across versions: state snapshots reference them.
const (
	ParamSwingRatio uint32 = iota
	ParamAccentAmount
	ParamHumanizeTiming
	ParamHumanizeVelocity
	ParamOSCEnabled
	ParamOSCPort
	ParamBypass
)

// DefaultOSCPort matches the Ardour OSC surface convention the original
// control plane talks to.
const DefaultOSCPort = 3819

func declareParameters() []*param.Parameter {
	return []*param.Parameter{
		param.New(ParamSwingRatio, "Swing Ratio").
			ShortName("Swing").
			Range(style.SwingRatioMin, style.SwingRatioMax).
			Default(style.DefaultSwingRatio).
			Formatter(param.RatioFormatter, param.RatioParser).
			Build(),
		param.New(ParamAccentAmount, "Accent Amount").
			ShortName("Accent").
			Range(style.AccentAmountMin, style.AccentAmountMax).
			Default(style.DefaultAccentAmount).
			Formatter(param.VelocityFormatter, param.VelocityParser).
			Build(),
		param.New(ParamHumanizeTiming, "Humanize Timing").
			ShortName("HumTime").
			Range(style.HumanizeAmountMin, style.HumanizeAmountMax).
			Default(0).
			Formatter(param.PercentFormatter, param.PercentParser).
			Build(),
		param.New(ParamHumanizeVelocity, "Humanize Velocity").
			ShortName("HumVel").
			Range(style.HumanizeAmountMin, style.HumanizeAmountMax).
			Default(0).
			Formatter(param.PercentFormatter, param.PercentParser).
			Build(),
		param.New(ParamOSCEnabled, "OSC Enabled").
			ShortName("OSC").
			Toggle().
			Formatter(param.OnOffFormatter, param.OnOffParser).
			Build(),
		param.New(ParamOSCPort, "OSC Port").
			ShortName("Port").
			Range(1000, 65535).
			Default(DefaultOSCPort).
			Integer().
			Build(),
		param.New(ParamBypass, "Bypass").
			Toggle().
			Bypass().
			Formatter(param.OnOffFormatter, param.OnOffParser).
			Build(),
	}
}
