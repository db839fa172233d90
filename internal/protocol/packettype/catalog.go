package packettype

// Каталог версионных разделов. Набор имён совпадает с таблицами в data/.

// Игра, к клиенту.
var (
	PlayToClientKeepAlive                     = declare(ToClient, Play, "keep_alive")
	PlayToClientJoinGame                      = declare(ToClient, Play, "join_game")
	PlayToClientChatMessage                   = declare(ToClient, Play, "chat_message")
	PlayToClientTimeUpdate                    = declare(ToClient, Play, "time_update")
	PlayToClientEntityEquipment               = declare(ToClient, Play, "entity_equipment")
	PlayToClientSpawnPosition                 = declare(ToClient, Play, "spawn_position")
	PlayToClientUpdateHealth                  = declare(ToClient, Play, "update_health")
	PlayToClientRespawn                       = declare(ToClient, Play, "respawn")
	PlayToClientPlayerPositionAndLook         = declare(ToClient, Play, "player_position_and_look")
	PlayToClientHeldItemChange                = declare(ToClient, Play, "held_item_change")
	PlayToClientUseBed                        = declare(ToClient, Play, "use_bed")
	PlayToClientEntityAnimation               = declare(ToClient, Play, "entity_animation")
	PlayToClientSpawnPlayer                   = declare(ToClient, Play, "spawn_player")
	PlayToClientCollectItem                   = declare(ToClient, Play, "collect_item")
	PlayToClientSpawnEntity                   = declare(ToClient, Play, "spawn_entity")
	PlayToClientSpawnLivingEntity             = declare(ToClient, Play, "spawn_living_entity")
	PlayToClientSpawnPainting                 = declare(ToClient, Play, "spawn_painting")
	PlayToClientSpawnExperienceOrb            = declare(ToClient, Play, "spawn_experience_orb")
	PlayToClientEntityVelocity                = declare(ToClient, Play, "entity_velocity")
	PlayToClientDestroyEntities               = declare(ToClient, Play, "destroy_entities")
	PlayToClientEntityMovement                = declare(ToClient, Play, "entity_movement")
	PlayToClientEntityRelativeMove            = declare(ToClient, Play, "entity_relative_move")
	PlayToClientEntityRotation                = declare(ToClient, Play, "entity_rotation")
	PlayToClientEntityRelativeMoveAndRotation = declare(ToClient, Play, "entity_relative_move_and_rotation")
	PlayToClientEntityTeleport                = declare(ToClient, Play, "entity_teleport")
	PlayToClientEntityHeadLook                = declare(ToClient, Play, "entity_head_look")
	PlayToClientEntityStatus                  = declare(ToClient, Play, "entity_status")
	PlayToClientAttachEntity                  = declare(ToClient, Play, "attach_entity")
	PlayToClientEntityMetadata                = declare(ToClient, Play, "entity_metadata")
	PlayToClientEntityEffect                  = declare(ToClient, Play, "entity_effect")
	PlayToClientRemoveEntityEffect            = declare(ToClient, Play, "remove_entity_effect")
	PlayToClientSetExperience                 = declare(ToClient, Play, "set_experience")
	PlayToClientUpdateAttributes              = declare(ToClient, Play, "update_attributes")
	PlayToClientChunkData                     = declare(ToClient, Play, "chunk_data")
	PlayToClientMultiBlockChange              = declare(ToClient, Play, "multi_block_change")
	PlayToClientBlockChange                   = declare(ToClient, Play, "block_change")
	PlayToClientBlockAction                   = declare(ToClient, Play, "block_action")
	PlayToClientBlockBreakAnimation           = declare(ToClient, Play, "block_break_animation")
	PlayToClientMapChunkBulk                  = declare(ToClient, Play, "map_chunk_bulk")
	PlayToClientExplosion                     = declare(ToClient, Play, "explosion")
	PlayToClientEffect                        = declare(ToClient, Play, "effect")
	PlayToClientNamedSoundEffect              = declare(ToClient, Play, "named_sound_effect")
	PlayToClientParticle                      = declare(ToClient, Play, "particle")
	PlayToClientChangeGameState               = declare(ToClient, Play, "change_game_state")
	PlayToClientSpawnWeatherEntity            = declare(ToClient, Play, "spawn_weather_entity")
	PlayToClientOpenWindow                    = declare(ToClient, Play, "open_window")
	PlayToClientCloseWindow                   = declare(ToClient, Play, "close_window")
	PlayToClientSetSlot                       = declare(ToClient, Play, "set_slot")
	PlayToClientWindowItems                   = declare(ToClient, Play, "window_items")
	PlayToClientWindowProperty                = declare(ToClient, Play, "window_property")
	PlayToClientWindowConfirmation            = declare(ToClient, Play, "window_confirmation")
	PlayToClientUpdateSign                    = declare(ToClient, Play, "update_sign")
	PlayToClientMapData                       = declare(ToClient, Play, "map_data")
	PlayToClientBlockEntityData               = declare(ToClient, Play, "block_entity_data")
	PlayToClientOpenSignEditor                = declare(ToClient, Play, "open_sign_editor")
	PlayToClientStatistics                    = declare(ToClient, Play, "statistics")
	PlayToClientPlayerInfo                    = declare(ToClient, Play, "player_info")
	PlayToClientPlayerAbilities               = declare(ToClient, Play, "player_abilities")
	PlayToClientTabComplete                   = declare(ToClient, Play, "tab_complete")
	PlayToClientScoreboardObjective           = declare(ToClient, Play, "scoreboard_objective")
	PlayToClientUpdateScore                   = declare(ToClient, Play, "update_score")
	PlayToClientDisplayScoreboard             = declare(ToClient, Play, "display_scoreboard")
	PlayToClientTeams                         = declare(ToClient, Play, "teams")
	PlayToClientPluginMessage                 = declare(ToClient, Play, "plugin_message")
	PlayToClientDisconnect                    = declare(ToClient, Play, "disconnect")
	PlayToClientServerDifficulty              = declare(ToClient, Play, "server_difficulty")
	PlayToClientCombatEvent                   = declare(ToClient, Play, "combat_event")
	PlayToClientCamera                        = declare(ToClient, Play, "camera")
	PlayToClientWorldBorder                   = declare(ToClient, Play, "world_border")
	PlayToClientTitle                         = declare(ToClient, Play, "title")
	PlayToClientSetCompression                = declare(ToClient, Play, "set_compression")
	PlayToClientPlayerListHeaderAndFooter     = declare(ToClient, Play, "player_list_header_and_footer")
	PlayToClientResourcePackSend              = declare(ToClient, Play, "resource_pack_send")
	PlayToClientUpdateEntityNbt               = declare(ToClient, Play, "update_entity_nbt")
	PlayToClientBossBar                       = declare(ToClient, Play, "boss_bar")
	PlayToClientSetCooldown                   = declare(ToClient, Play, "set_cooldown")
	PlayToClientUnloadChunk                   = declare(ToClient, Play, "unload_chunk")
	PlayToClientVehicleMove                   = declare(ToClient, Play, "vehicle_move")
	PlayToClientSetPassengers                 = declare(ToClient, Play, "set_passengers")
	PlayToClientSoundEffect                   = declare(ToClient, Play, "sound_effect")
	PlayToClientBundle                        = declare(ToClient, Play, "bundle")
	PlayToClientAcknowledgeBlockChanges       = declare(ToClient, Play, "acknowledge_block_changes")
	PlayToClientChunkBatchEnd                 = declare(ToClient, Play, "chunk_batch_end")
	PlayToClientChunkBatchBegin               = declare(ToClient, Play, "chunk_batch_begin")
	PlayToClientChunkBiomes                   = declare(ToClient, Play, "chunk_biomes")
	PlayToClientClearTitles                   = declare(ToClient, Play, "clear_titles")
	PlayToClientDeclareCommands               = declare(ToClient, Play, "declare_commands")
	PlayToClientCustomChatCompletions         = declare(ToClient, Play, "custom_chat_completions")
	PlayToClientDamageEvent                   = declare(ToClient, Play, "damage_event")
	PlayToClientDeleteChat                    = declare(ToClient, Play, "delete_chat")
	PlayToClientDisguisedChat                 = declare(ToClient, Play, "disguised_chat")
	PlayToClientOpenHorseWindow               = declare(ToClient, Play, "open_horse_window")
	PlayToClientHurtAnimation                 = declare(ToClient, Play, "hurt_animation")
	PlayToClientInitializeWorldBorder         = declare(ToClient, Play, "initialize_world_border")
	PlayToClientUpdateLight                   = declare(ToClient, Play, "update_light")
	PlayToClientMerchantOffers                = declare(ToClient, Play, "merchant_offers")
	PlayToClientOpenBook                      = declare(ToClient, Play, "open_book")
	PlayToClientPing                          = declare(ToClient, Play, "ping")
	PlayToClientDebugPong                     = declare(ToClient, Play, "debug_pong")
	PlayToClientCraftRecipeResponse           = declare(ToClient, Play, "craft_recipe_response")
	PlayToClientEndCombatEvent                = declare(ToClient, Play, "end_combat_event")
	PlayToClientEnterCombatEvent              = declare(ToClient, Play, "enter_combat_event")
	PlayToClientDeathCombatEvent              = declare(ToClient, Play, "death_combat_event")
	PlayToClientPlayerInfoRemove              = declare(ToClient, Play, "player_info_remove")
	PlayToClientPlayerInfoUpdate              = declare(ToClient, Play, "player_info_update")
	PlayToClientFacingPosition                = declare(ToClient, Play, "facing_position")
	PlayToClientUnlockRecipes                 = declare(ToClient, Play, "unlock_recipes")
	PlayToClientSelectAdvancementsTab         = declare(ToClient, Play, "select_advancements_tab")
	PlayToClientServerData                    = declare(ToClient, Play, "server_data")
	PlayToClientActionBar                     = declare(ToClient, Play, "action_bar")
	PlayToClientWorldBorderCenter             = declare(ToClient, Play, "world_border_center")
	PlayToClientWorldBorderLerpSize           = declare(ToClient, Play, "world_border_lerp_size")
	PlayToClientWorldBorderSize               = declare(ToClient, Play, "world_border_size")
	PlayToClientWorldBorderWarningDelay       = declare(ToClient, Play, "world_border_warning_delay")
	PlayToClientWorldBorderWarningReach       = declare(ToClient, Play, "world_border_warning_reach")
	PlayToClientUpdateViewPosition            = declare(ToClient, Play, "update_view_position")
	PlayToClientUpdateViewDistance            = declare(ToClient, Play, "update_view_distance")
	PlayToClientUpdateSimulationDistance      = declare(ToClient, Play, "update_simulation_distance")
	PlayToClientSetTitleSubtitle              = declare(ToClient, Play, "set_title_subtitle")
	PlayToClientSetTitleText                  = declare(ToClient, Play, "set_title_text")
	PlayToClientSetTitleTimes                 = declare(ToClient, Play, "set_title_times")
	PlayToClientEntitySoundEffect             = declare(ToClient, Play, "entity_sound_effect")
	PlayToClientConfigurationStart            = declare(ToClient, Play, "configuration_start")
	PlayToClientStopSound                     = declare(ToClient, Play, "stop_sound")
	PlayToClientSystemChatMessage             = declare(ToClient, Play, "system_chat_message")
	PlayToClientNbtQueryResponse              = declare(ToClient, Play, "nbt_query_response")
	PlayToClientUpdateAdvancements            = declare(ToClient, Play, "update_advancements")
	PlayToClientDeclareRecipes                = declare(ToClient, Play, "declare_recipes")
	PlayToClientTags                          = declare(ToClient, Play, "tags")
)

// Игра, к серверу.
var (
	PlayToServerKeepAlive                  = declare(ToServer, Play, "keep_alive")
	PlayToServerChatMessage                = declare(ToServer, Play, "chat_message")
	PlayToServerInteractEntity             = declare(ToServer, Play, "interact_entity")
	PlayToServerPlayerFlying               = declare(ToServer, Play, "player_flying")
	PlayToServerPlayerPosition             = declare(ToServer, Play, "player_position")
	PlayToServerPlayerRotation             = declare(ToServer, Play, "player_rotation")
	PlayToServerPlayerPositionAndRotation  = declare(ToServer, Play, "player_position_and_rotation")
	PlayToServerPlayerDigging              = declare(ToServer, Play, "player_digging")
	PlayToServerPlayerBlockPlacement       = declare(ToServer, Play, "player_block_placement")
	PlayToServerHeldItemChange             = declare(ToServer, Play, "held_item_change")
	PlayToServerAnimation                  = declare(ToServer, Play, "animation")
	PlayToServerEntityAction               = declare(ToServer, Play, "entity_action")
	PlayToServerSteerVehicle               = declare(ToServer, Play, "steer_vehicle")
	PlayToServerCloseWindow                = declare(ToServer, Play, "close_window")
	PlayToServerClickWindow                = declare(ToServer, Play, "click_window")
	PlayToServerWindowConfirmation         = declare(ToServer, Play, "window_confirmation")
	PlayToServerCreativeInventoryAction    = declare(ToServer, Play, "creative_inventory_action")
	PlayToServerClickWindowButton          = declare(ToServer, Play, "click_window_button")
	PlayToServerUpdateSign                 = declare(ToServer, Play, "update_sign")
	PlayToServerPlayerAbilities            = declare(ToServer, Play, "player_abilities")
	PlayToServerTabComplete                = declare(ToServer, Play, "tab_complete")
	PlayToServerClientSettings             = declare(ToServer, Play, "client_settings")
	PlayToServerClientStatus               = declare(ToServer, Play, "client_status")
	PlayToServerPluginMessage              = declare(ToServer, Play, "plugin_message")
	PlayToServerSpectate                   = declare(ToServer, Play, "spectate")
	PlayToServerResourcePackStatus         = declare(ToServer, Play, "resource_pack_status")
	PlayToServerTeleportConfirm            = declare(ToServer, Play, "teleport_confirm")
	PlayToServerVehicleMove                = declare(ToServer, Play, "vehicle_move")
	PlayToServerSteerBoat                  = declare(ToServer, Play, "steer_boat")
	PlayToServerUseItem                    = declare(ToServer, Play, "use_item")
	PlayToServerQueryBlockNbt              = declare(ToServer, Play, "query_block_nbt")
	PlayToServerSetDifficulty              = declare(ToServer, Play, "set_difficulty")
	PlayToServerChatAck                    = declare(ToServer, Play, "chat_ack")
	PlayToServerChatCommand                = declare(ToServer, Play, "chat_command")
	PlayToServerChatSessionUpdate          = declare(ToServer, Play, "chat_session_update")
	PlayToServerChunkBatchAck              = declare(ToServer, Play, "chunk_batch_ack")
	PlayToServerConfigurationAck           = declare(ToServer, Play, "configuration_ack")
	PlayToServerEditBook                   = declare(ToServer, Play, "edit_book")
	PlayToServerQueryEntityNbt             = declare(ToServer, Play, "query_entity_nbt")
	PlayToServerGenerateStructure          = declare(ToServer, Play, "generate_structure")
	PlayToServerLockDifficulty             = declare(ToServer, Play, "lock_difficulty")
	PlayToServerPickItem                   = declare(ToServer, Play, "pick_item")
	PlayToServerDebugPing                  = declare(ToServer, Play, "debug_ping")
	PlayToServerCraftRecipeRequest         = declare(ToServer, Play, "craft_recipe_request")
	PlayToServerPong                       = declare(ToServer, Play, "pong")
	PlayToServerSetRecipeBookState         = declare(ToServer, Play, "set_recipe_book_state")
	PlayToServerSetDisplayedRecipe         = declare(ToServer, Play, "set_displayed_recipe")
	PlayToServerNameItem                   = declare(ToServer, Play, "name_item")
	PlayToServerAdvancementTab             = declare(ToServer, Play, "advancement_tab")
	PlayToServerSelectTrade                = declare(ToServer, Play, "select_trade")
	PlayToServerSetBeaconEffect            = declare(ToServer, Play, "set_beacon_effect")
	PlayToServerUpdateCommandBlock         = declare(ToServer, Play, "update_command_block")
	PlayToServerUpdateCommandBlockMinecart = declare(ToServer, Play, "update_command_block_minecart")
	PlayToServerUpdateJigsawBlock          = declare(ToServer, Play, "update_jigsaw_block")
	PlayToServerUpdateStructureBlock       = declare(ToServer, Play, "update_structure_block")
)

// Игра, к клиенту: разделы более поздних ревизий.
var (
	PlayToClientAcknowledgePlayerDigging = declare(ToClient, Play, "acknowledge_player_digging")
	PlayToClientVibrationSignal          = declare(ToClient, Play, "vibration_signal")
	PlayToClientChatPreview              = declare(ToClient, Play, "chat_preview")
	PlayToClientSetDisplayChatPreview    = declare(ToClient, Play, "set_display_chat_preview")
	PlayToClientMessageHeader            = declare(ToClient, Play, "message_header")
	PlayToClientUpdateEnabledFeatures    = declare(ToClient, Play, "update_enabled_features")
	PlayToClientResetScore               = declare(ToClient, Play, "reset_score")
	PlayToClientResourcePackRemove       = declare(ToClient, Play, "resource_pack_remove")
	PlayToClientTickingState             = declare(ToClient, Play, "ticking_state")
	PlayToClientTickingStep              = declare(ToClient, Play, "ticking_step")
	PlayToClientCookieRequest            = declare(ToClient, Play, "cookie_request")
	PlayToClientDebugSample              = declare(ToClient, Play, "debug_sample")
	PlayToClientStoreCookie              = declare(ToClient, Play, "store_cookie")
	PlayToClientTransfer                 = declare(ToClient, Play, "transfer")
	PlayToClientProjectilePower          = declare(ToClient, Play, "projectile_power")
	PlayToClientCustomReportDetails      = declare(ToClient, Play, "custom_report_details")
	PlayToClientServerLinks              = declare(ToClient, Play, "server_links")
	PlayToClientEntityPositionSync       = declare(ToClient, Play, "entity_position_sync")
	PlayToClientMoveMinecart             = declare(ToClient, Play, "move_minecart")
	PlayToClientPlayerRotation           = declare(ToClient, Play, "player_rotation")
	PlayToClientRecipeBookAdd            = declare(ToClient, Play, "recipe_book_add")
	PlayToClientRecipeBookRemove         = declare(ToClient, Play, "recipe_book_remove")
	PlayToClientRecipeBookSettings       = declare(ToClient, Play, "recipe_book_settings")
	PlayToClientSetCursorItem            = declare(ToClient, Play, "set_cursor_item")
	PlayToClientSetPlayerInventory       = declare(ToClient, Play, "set_player_inventory")
	PlayToClientTestInstanceBlockStatus  = declare(ToClient, Play, "test_instance_block_status")
	PlayToClientWaypoint                 = declare(ToClient, Play, "waypoint")
	PlayToClientClearDialog              = declare(ToClient, Play, "clear_dialog")
	PlayToClientShowDialog               = declare(ToClient, Play, "show_dialog")
)

// Игра, к серверу: разделы более поздних ревизий.
var (
	PlayToServerRecipeBookData          = declare(ToServer, Play, "recipe_book_data")
	PlayToServerChatPreview             = declare(ToServer, Play, "chat_preview")
	PlayToServerSlotStateChange         = declare(ToServer, Play, "slot_state_change")
	PlayToServerChatCommandSigned       = declare(ToServer, Play, "chat_command_signed")
	PlayToServerCookieResponse          = declare(ToServer, Play, "cookie_response")
	PlayToServerDebugSampleSubscription = declare(ToServer, Play, "debug_sample_subscription")
	PlayToServerSelectBundleItem        = declare(ToServer, Play, "select_bundle_item")
	PlayToServerClientTickEnd           = declare(ToServer, Play, "client_tick_end")
	PlayToServerPickItemFromEntity      = declare(ToServer, Play, "pick_item_from_entity")
	PlayToServerPlayerLoaded            = declare(ToServer, Play, "player_loaded")
	PlayToServerChangeGameMode          = declare(ToServer, Play, "change_game_mode")
	PlayToServerSetTestBlock            = declare(ToServer, Play, "set_test_block")
	PlayToServerTestInstanceBlockAction = declare(ToServer, Play, "test_instance_block_action")
	PlayToServerCustomClickAction       = declare(ToServer, Play, "custom_click_action")
)

// Конфигурация, к клиенту.
var (
	ConfigToClientPluginMessage         = declare(ToClient, Configuration, "plugin_message")
	ConfigToClientDisconnect            = declare(ToClient, Configuration, "disconnect")
	ConfigToClientConfigurationEnd      = declare(ToClient, Configuration, "configuration_end")
	ConfigToClientKeepAlive             = declare(ToClient, Configuration, "keep_alive")
	ConfigToClientPing                  = declare(ToClient, Configuration, "ping")
	ConfigToClientRegistryData          = declare(ToClient, Configuration, "registry_data")
	ConfigToClientResourcePackSend      = declare(ToClient, Configuration, "resource_pack_send")
	ConfigToClientUpdateEnabledFeatures = declare(ToClient, Configuration, "update_enabled_features")
	ConfigToClientTags                  = declare(ToClient, Configuration, "tags")
	ConfigToClientResourcePackRemove    = declare(ToClient, Configuration, "resource_pack_remove")
	ConfigToClientCookieRequest         = declare(ToClient, Configuration, "cookie_request")
	ConfigToClientResetChat             = declare(ToClient, Configuration, "reset_chat")
	ConfigToClientStoreCookie           = declare(ToClient, Configuration, "store_cookie")
	ConfigToClientTransfer              = declare(ToClient, Configuration, "transfer")
	ConfigToClientSelectKnownPacks      = declare(ToClient, Configuration, "select_known_packs")
	ConfigToClientCustomReportDetails   = declare(ToClient, Configuration, "custom_report_details")
	ConfigToClientServerLinks           = declare(ToClient, Configuration, "server_links")
	ConfigToClientClearDialog           = declare(ToClient, Configuration, "clear_dialog")
	ConfigToClientShowDialog            = declare(ToClient, Configuration, "show_dialog")
)

// Конфигурация, к серверу.
var (
	ConfigToServerClientSettings      = declare(ToServer, Configuration, "client_settings")
	ConfigToServerPluginMessage       = declare(ToServer, Configuration, "plugin_message")
	ConfigToServerConfigurationEndAck = declare(ToServer, Configuration, "configuration_end_ack")
	ConfigToServerKeepAlive           = declare(ToServer, Configuration, "keep_alive")
	ConfigToServerPong                = declare(ToServer, Configuration, "pong")
	ConfigToServerResourcePackStatus  = declare(ToServer, Configuration, "resource_pack_status")
	ConfigToServerCookieResponse      = declare(ToServer, Configuration, "cookie_response")
	ConfigToServerSelectKnownPacks    = declare(ToServer, Configuration, "select_known_packs")
	ConfigToServerCustomClickAction   = declare(ToServer, Configuration, "custom_click_action")
)
