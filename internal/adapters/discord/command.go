package discord

import "github.com/bwmarrin/discordgo"

const searchOption = "search"

var upcomingCommand = &discordgo.ApplicationCommand{
	Name:        "upcoming",
	Description: "List upcoming campus events",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        searchOption,
			Description: "Filter on title or description",
			Required:    false,
		},
	},
}

// Commands lists the slash commands the bot registers.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{upcomingCommand}
}

func optionString(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, o := range opts {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue()
		}
	}
	return ""
}
