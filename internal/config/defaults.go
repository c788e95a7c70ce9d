package config

const (
	defaultConfigPath      = "~/.config/swbd/config.toml"
	defaultStateDir        = "~/.local/share/swbd"
	defaultLogDir          = "~/.local/share/swbd/logs"
	defaultWorkDir         = "~/.cache/swbd/work"
	defaultJavaBinary      = "java"
	defaultConverterDir    = "stanford_converter"
	defaultClassPath       = "./*:"
	defaultMainClass       = "edu.stanford.nlp.trees.EnglishGrammaticalStructure"
	defaultConverterMemory = "800m"
	defaultConverterTime   = 600
	defaultMinTokens       = 2
	defaultTerminalsSubdir = "xml/terminals"
	defaultSyntaxSubdir    = "xml/syntax"
	defaultTurnsSubdir     = "xml/turns"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
			WorkDir:  defaultWorkDir,
		},
		Converter: Converter{
			JavaBinary:     defaultJavaBinary,
			Dir:            defaultConverterDir,
			ClassPath:      defaultClassPath,
			MainClass:      defaultMainClass,
			Memory:         defaultConverterMemory,
			TimeoutSeconds: defaultConverterTime,
			ExtraArgs:      []string{"-basic", "-makeCopulaHead", "-conllx"},
		},
		Split: DefaultSplit(),
		Filters: Filters{
			PunctTags:   defaultPunctTags(),
			FillerWords: []string{"uh", "um"},
			MWEs:        []string{"you_know", "i_mean"},
			MinTokens:   defaultMinTokens,
		},
		NXT: NXT{
			TerminalsSubdir: defaultTerminalsSubdir,
			SyntaxSubdir:    defaultSyntaxSubdir,
			TurnsSubdir:     defaultTurnsSubdir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultSplit returns the Johnson and Charniak division of the Switchboard
// treebank.
func DefaultSplit() Split {
	return Split{
		TrainBelow: 4000,
		TestAbove:  4000,
		TestMax:    4154,
		DevAbove:   4500,
		DevMax:     4936,
	}
}

func defaultPunctTags() []string {
	return []string{",", ":", ".", ";", "RRB", "LRB", "-RRB-", "-LRB-", "``", "''"}
}
