package ui

import "github.com/ragdeck/ragdeck/internal/form"

// DefaultFields returns the editable subset of the scribe
// configuration, in display order. Field names are the dot paths of
// the backend's config tree.
func DefaultFields() []*form.Field {
	return []*form.Field{
		{Name: "documents_folder", Label: "Documents folder", Kind: form.Text},

		{Name: "splitter.words_per_context", Label: "Words per context", Kind: form.Number},
		{Name: "splitter.overlap_words", Label: "Overlap words", Kind: form.Number},
		{Name: "splitter.sentences_per_context", Label: "Sentences per context", Kind: form.Number},
		{Name: "splitter.overlap_sentences", Label: "Overlap sentences", Kind: form.Number},

		{Name: "answer_generator.generation.temperature", Label: "Temperature", Kind: form.Number},
		{Name: "answer_generator.generation.top_p", Label: "Top-p", Kind: form.Number},
		{Name: "answer_generator.generation.max_new_tokens", Label: "Max new tokens", Kind: form.Number},
		{Name: "answer_generator.generation.repetition_penalty", Label: "Repetition penalty", Kind: form.Number},
		{Name: "answer_generator.generation.early_stopping", Label: "Early stopping", Kind: form.Checkbox},
		{Name: "answer_generator.generation.enable_cpu_offload", Label: "CPU offload", Kind: form.Checkbox},

		{Name: "embedding_handler.device", Label: "Embedding device", Kind: form.Text},
		{Name: "embedding_handler.model_path", Label: "Embedding model path", Kind: form.Text},

		{Name: "embedding_storage.collection_name", Label: "Collection name", Kind: form.Text},
		{Name: "embedding_storage.similarity_threshold", Label: "Similarity threshold", Kind: form.Number},

		{Name: "speech.language", Label: "Speech language", Kind: form.Text},
		{Name: "speech.model", Label: "Speech model", Kind: form.Text},

		{Name: "dialog_manager.show_text_source_info", Label: "Show source info", Kind: form.Checkbox},
		{Name: "dialog_manager.show_text_fragments", Label: "Show text fragments", Kind: form.Checkbox},

		{Name: "logging.level", Label: "Log level", Kind: form.Text},
		{Name: "logging.file", Label: "Log file", Kind: form.Text},
	}
}
