package domain

// GenerationSuggestions は生成タブで提示するプロンプト例です。
var GenerationSuggestions = []string{
	"A majestic lion wearing a crown of stars, digital art",
	"An enchanted forest with glowing mushrooms and fireflies",
	"A retro-futuristic robot serving coffee in a 1950s diner",
	"A surreal underwater city with fish swimming between the buildings",
	"Photorealistic image of a classic muscle car racing through the desert",
	"A fantastic treehouse built into a giant ancient tree",
}

// EditSuggestions は編集タブで提示する指示例です。
var EditSuggestions = []string{
	"Add a dramatic, stormy sky",
	"Change the season to autumn",
	"Make it look like an oil painting",
	"Apply a cyberpunk neon glow effect",
	"Remove the people in the background",
	"Give it a cinematic look",
}
