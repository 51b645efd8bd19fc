package constant

// ImageStyleNone is the sentinel clients send when no style filter
// should be appended to the prompt.
const ImageStyleNone = "БЕЗ_СТИЛЯ"

// Instruction prefix used when translating a non-English prompt before
// it is sent to the image API.
const ImageTranslationPrompt = "В ответ пришли только перевод на английский: "

// ImageStyles maps the client-facing style names to the prompt suffix
// appended to the translated prompt.
var ImageStyles = map[string]string{
	ImageStyleNone: "",
	"РЕАЛИЗМ":      "Cinematic photography, shot on Sony Venice cinema camera, Cooke anamorphic lenses, shallow depth of field, film grain, cinematic lighting, color grading, wide aspect ratio, detailed shadows and highlights",
	"ПЕПЕ":         "Pepe the Frog meme art style, MS Paint aesthetics, crude drawings, green frog character, humorous expressions, comic sans text, viral internet meme format, surreal backgrounds",
	"МУЛЬТИК":      "3D animated film still, Pixar style, cute stylized characters, expressive facial animations, rich textures, vivid colors, cinematic composition, realistic shading and lighting, renderman rendering",
	"ГРАВЮРА":      "Scientific illustration in the style of vintage anatomical etchings, detailed line engravings, monochromatic color scheme, stippled textures, labeled diagrams, educational visuals",
	"АРТ":          "Vibrant creative art style, bold color palette, surreal shapes and patterns, abstract elements, painterly textures, dreamy atmosphere, psychedelic vibes, imaginative composition, artistic interpretation",
	"МИНИМАЛИЗМ":   "Abstract minimalist landscape, seamless horizon line, blurred boundaries, neutral hues, empty sky, lack of details",
	"ФЛЭТ":         "The cat is walking on the roof. Flat vector illustration style for web design, simplified shapes, stylized icons, limited color palette, clean linework, scalable graphics, modern aesthetic, digital art for websites and apps.",
	"КИБЕРПАНК":    "Cyberpunk futuristic concept art, neon cybercity environments, advanced technologies, holographic displays, sleek robotic designs, dark dystopian atmospheres, gritty sci-fi aesthetics",
}

// ValidImageStyle reports whether the style name is known.
func ValidImageStyle(style string) bool {
	_, ok := ImageStyles[style]
	return ok
}
