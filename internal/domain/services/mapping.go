package services

import "strings"

// Ecosystem tags a mapping rule with the package manager it targets
type Ecosystem string

// The two supported package-manager ecosystems
const (
	EcosystemWinget     Ecosystem = "winget"
	EcosystemChocolatey Ecosystem = "chocolatey"
)

// MappingRule associates a name pattern with a package identifier
type MappingRule struct {
	Pattern   string
	ID        string
	Ecosystem Ecosystem
}

// MappingTable is an ordered sequence of mapping rules. Lookup returns the
// first rule whose normalized pattern is contained in the normalized name;
// declaration order is a load-bearing invariant (more specific patterns
// must precede their prefixes), which is why this is a slice and not a map.
// The table never performs I/O and never fails.
type MappingTable struct {
	rules []MappingRule
}

// NewMappingTable builds a table from rules in the given order. Extra rules
// loaded from a user file are consulted ahead of the curated defaults, so
// callers prepend overrides.
func NewMappingTable(rules ...MappingRule) *MappingTable {
	return &MappingTable{rules: rules}
}

// Lookup returns the first rule matching the software name
func (t *MappingTable) Lookup(name string) (MappingRule, bool) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return MappingRule{}, false
	}

	for _, rule := range t.rules {
		if strings.Contains(normalized, NormalizeName(rule.Pattern)) {
			return rule, true
		}
	}
	return MappingRule{}, false
}

// Len returns the number of rules in the table
func (t *MappingTable) Len() int {
	return len(t.rules)
}

// DefaultMappingRules is the curated table of well-known desktop software.
// Ordered: keep more specific patterns before shorter ones that they
// contain (e.g. "Visual Studio Code" before "Visual Studio").
func DefaultMappingRules() []MappingRule {
	return []MappingRule{
		{Pattern: "Google Chrome", ID: "Google.Chrome", Ecosystem: EcosystemWinget},
		{Pattern: "Mozilla Firefox", ID: "Mozilla.Firefox", Ecosystem: EcosystemWinget},
		{Pattern: "Mozilla Thunderbird", ID: "Mozilla.Thunderbird", Ecosystem: EcosystemWinget},
		{Pattern: "Microsoft Edge", ID: "Microsoft.Edge", Ecosystem: EcosystemWinget},
		{Pattern: "Visual Studio Code", ID: "Microsoft.VisualStudioCode", Ecosystem: EcosystemWinget},
		{Pattern: "Visual Studio", ID: "Microsoft.VisualStudio.2022.Community", Ecosystem: EcosystemWinget},
		{Pattern: "7-Zip", ID: "7zip.7zip", Ecosystem: EcosystemWinget},
		{Pattern: "Notepad++", ID: "Notepad++.Notepad++", Ecosystem: EcosystemWinget},
		{Pattern: "VLC media player", ID: "VideoLAN.VLC", Ecosystem: EcosystemWinget},
		{Pattern: "WinRAR", ID: "RARLab.WinRAR", Ecosystem: EcosystemWinget},
		{Pattern: "Git", ID: "Git.Git", Ecosystem: EcosystemWinget},
		{Pattern: "Node.js", ID: "OpenJS.NodeJS", Ecosystem: EcosystemWinget},
		{Pattern: "Python", ID: "Python.Python.3.12", Ecosystem: EcosystemWinget},
		{Pattern: "Steam", ID: "Valve.Steam", Ecosystem: EcosystemWinget},
		{Pattern: "Discord", ID: "Discord.Discord", Ecosystem: EcosystemWinget},
		{Pattern: "Spotify", ID: "Spotify.Spotify", Ecosystem: EcosystemWinget},
		{Pattern: "Zoom", ID: "Zoom.Zoom", Ecosystem: EcosystemWinget},
		{Pattern: "Slack", ID: "SlackTechnologies.Slack", Ecosystem: EcosystemWinget},
		{Pattern: "Telegram", ID: "Telegram.TelegramDesktop", Ecosystem: EcosystemWinget},
		{Pattern: "Signal", ID: "OpenWhisperSystems.Signal", Ecosystem: EcosystemWinget},
		{Pattern: "Adobe Acrobat Reader", ID: "Adobe.Acrobat.Reader.64-bit", Ecosystem: EcosystemWinget},
		{Pattern: "OBS Studio", ID: "OBSProject.OBSStudio", Ecosystem: EcosystemWinget},
		{Pattern: "Blender", ID: "BlenderFoundation.Blender", Ecosystem: EcosystemWinget},
		{Pattern: "GIMP", ID: "GIMP.GIMP", Ecosystem: EcosystemWinget},
		{Pattern: "Audacity", ID: "Audacity.Audacity", Ecosystem: EcosystemWinget},
		{Pattern: "Paint.NET", ID: "dotPDN.PaintDotNet", Ecosystem: EcosystemWinget},
		{Pattern: "FileZilla", ID: "TimKosse.FileZilla.Client", Ecosystem: EcosystemWinget},
		{Pattern: "PuTTY", ID: "PuTTY.PuTTY", Ecosystem: EcosystemWinget},
		{Pattern: "qBittorrent", ID: "qBittorrent.qBittorrent", Ecosystem: EcosystemWinget},
		{Pattern: "KeePass", ID: "DominikReichl.KeePass", Ecosystem: EcosystemWinget},
		{Pattern: "TeamViewer", ID: "TeamViewer.TeamViewer", Ecosystem: EcosystemWinget},
		{Pattern: "PowerToys", ID: "Microsoft.PowerToys", Ecosystem: EcosystemWinget},
		{Pattern: "Docker Desktop", ID: "Docker.DockerDesktop", Ecosystem: EcosystemWinget},
		{Pattern: "WhatsApp", ID: "WhatsApp.WhatsApp", Ecosystem: EcosystemWinget},
		{Pattern: "Epic Games Launcher", ID: "EpicGames.EpicGamesLauncher", Ecosystem: EcosystemWinget},
		{Pattern: "HandBrake", ID: "HandBrake.HandBrake", Ecosystem: EcosystemWinget},
		{Pattern: "Inkscape", ID: "Inkscape.Inkscape", Ecosystem: EcosystemWinget},
		{Pattern: "LibreOffice", ID: "TheDocumentFoundation.LibreOffice", Ecosystem: EcosystemWinget},
		// Entries better served by chocolatey
		{Pattern: "CCleaner", ID: "ccleaner", Ecosystem: EcosystemChocolatey},
		{Pattern: "IrfanView", ID: "irfanview", Ecosystem: EcosystemChocolatey},
		{Pattern: "Everything", ID: "everything", Ecosystem: EcosystemChocolatey},
		{Pattern: "Greenshot", ID: "greenshot", Ecosystem: EcosystemChocolatey},
		{Pattern: "WinDirStat", ID: "windirstat", Ecosystem: EcosystemChocolatey},
		{Pattern: "Rufus", ID: "rufus", Ecosystem: EcosystemChocolatey},
		{Pattern: "Sumatra PDF", ID: "sumatrapdf", Ecosystem: EcosystemChocolatey},
		{Pattern: "MPC-HC", ID: "mpc-hc", Ecosystem: EcosystemChocolatey},
	}
}
