package prompt

// DeconstructPromptZh asks for a breakdown of one book. Args: %s book title.
// The reply language and the series rule are part of the instruction; the
// JSON shape itself is enforced by the response schema.
const DeconstructPromptZh = `请深度拆解这本经典书籍：%s。如果是系列丛书，请拆解其最核心的一本。请务必使用中文回复，并严格遵守JSON格式。`
